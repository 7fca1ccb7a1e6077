package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/internal/domain/watchlist"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type WatchlistUsecase interface {
	AddToWatchlist(ctx context.Context, userKey, movieID string) ([]string, bool, error)
	RemoveFromWatchlist(ctx context.Context, userKey, movieID string) ([]string, error)
	GetWatchlist(ctx context.Context, userKey string) ([]movies.Movie, error)
	IsInWatchlist(ctx context.Context, userKey, movieID string) bool
}

type WatchlistHandler struct {
	usecase WatchlistUsecase
}

func NewWatchlistHandler(usecase WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{usecase: usecase}
}

// AddToWatchlist
// POST /api/v1/watchlist/:user_key/add/:movie_id
func (h *WatchlistHandler) AddToWatchlist(c echo.Context) error {
	list, added, err := h.usecase.AddToWatchlist(c.Request().Context(), c.Param("user_key"), c.Param("movie_id"))
	if err != nil {
		return response.FromError(c, err)
	}

	message := "Movie added to watchlist"
	if !added {
		message = "Movie already in watchlist"
	}

	return response.Success(c, http.StatusOK, "watchlist_updated", watchlist.WatchlistResponse{
		Message:   message,
		Watchlist: list,
	})
}

// RemoveFromWatchlist
// DELETE /api/v1/watchlist/:user_key/remove/:movie_id
func (h *WatchlistHandler) RemoveFromWatchlist(c echo.Context) error {
	list, err := h.usecase.RemoveFromWatchlist(c.Request().Context(), c.Param("user_key"), c.Param("movie_id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "watchlist_updated", watchlist.WatchlistResponse{
		Message:   "Movie removed from watchlist",
		Watchlist: list,
	})
}

// GetWatchlist
// GET /api/v1/watchlist/:user_key
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	result, err := h.usecase.GetWatchlist(c.Request().Context(), c.Param("user_key"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// CheckWatchlist
// GET /api/v1/watchlist/:user_key/check/:movie_id
func (h *WatchlistHandler) CheckWatchlist(c echo.Context) error {
	inList := h.usecase.IsInWatchlist(c.Request().Context(), c.Param("user_key"), c.Param("movie_id"))
	return response.Success(c, http.StatusOK, "success", watchlist.CheckResponse{InWatchlist: inList})
}
