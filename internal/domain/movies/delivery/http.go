package delivery

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/pkg/middleware"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

// maxPosterSize caps poster uploads at 10 MB
const maxPosterSize = 10 << 20

type MovieUsecase interface {
	SubmitMovie(ctx context.Context, req movies.CreateMovieRequest) (*movies.Movie, error)
	GetMovieDetail(ctx context.Context, movieID string) (*movies.Movie, error)
	ListMovies(ctx context.Context, filter movies.MovieFilter) ([]movies.Movie, error)
	ListPendingMovies(ctx context.Context) ([]movies.Movie, error)
	ApproveMovie(ctx context.Context, movieID string) (*movies.Movie, error)
	RejectMovie(ctx context.Context, movieID string) (*movies.Movie, error)
	ToggleFeatured(ctx context.Context, movieID string) (bool, error)
	UploadPoster(ctx context.Context, movieID string, file io.Reader, size int64, contentType, filename string) (*movies.Movie, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type MovieHandler struct {
	usecase MovieUsecase
}

func NewMovieHandler(usecase MovieUsecase) *MovieHandler {
	return &MovieHandler{usecase: usecase}
}

// CreateMovie submits a movie for moderation
// POST /api/v1/movies
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req movies.CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		logger.Warn().Err(err).Msg("Movie submission validation failed")
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.SubmitMovie(c.Request().Context(), req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to submit movie")
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusCreated, "movie_submitted", result)
}

// GetMovieList returns movies matching the query filter
// GET /api/v1/movies?status=approved&search=&genre=Drama&year=1994&min_rating=4&featured=true&sort_by=rating
func (h *MovieHandler) GetMovieList(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_query_parameter", err.Error())
	}

	result, err := h.usecase.ListMovies(c.Request().Context(), filter)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// GetMovieDetail returns one movie
// GET /api/v1/movies/:id
func (h *MovieHandler) GetMovieDetail(c echo.Context) error {
	result, err := h.usecase.GetMovieDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// UploadPoster stores a poster image for the movie
// POST /api/v1/movies/:id/poster (multipart field "poster")
func (h *MovieHandler) UploadPoster(c echo.Context) error {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "poster_file_required", err.Error())
	}
	if fileHeader.Size > maxPosterSize {
		return response.Error(c, http.StatusBadRequest, "file_too_large", "maximum poster size is 10MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_poster_file", err.Error())
	}
	defer file.Close()

	result, err := h.usecase.UploadPoster(c.Request().Context(), c.Param("id"), file, fileHeader.Size,
		fileHeader.Header.Get(echo.HeaderContentType), fileHeader.Filename)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "poster_uploaded", result)
}

// GetPendingMovies returns the moderation queue (Admin only)
// GET /api/v1/admin/movies/pending
func (h *MovieHandler) GetPendingMovies(c echo.Context) error {
	result, err := h.usecase.ListPendingMovies(c.Request().Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// ApproveMovie (Admin only)
// POST /api/v1/admin/movies/:id/approve
func (h *MovieHandler) ApproveMovie(c echo.Context) error {
	result, err := h.usecase.ApproveMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "movie_approved_successfully", movies.ModerationResponse{
		MovieID: result.ID,
		Status:  result.Status,
		Message: "Movie approved successfully",
	})
}

// RejectMovie (Admin only)
// POST /api/v1/admin/movies/:id/reject
func (h *MovieHandler) RejectMovie(c echo.Context) error {
	result, err := h.usecase.RejectMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "movie_rejected_successfully", movies.ModerationResponse{
		MovieID: result.ID,
		Status:  result.Status,
		Message: "Movie rejected successfully",
	})
}

// ToggleFeatured (Admin only)
// POST /api/v1/admin/movies/:id/featured
func (h *MovieHandler) ToggleFeatured(c echo.Context) error {
	movieID := c.Param("id")
	featured, err := h.usecase.ToggleFeatured(c.Request().Context(), movieID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "featured_toggled", movies.FeaturedResponse{
		MovieID:  movieID,
		Featured: featured,
	})
}

// DeleteMovie (Admin only)
// DELETE /api/v1/admin/movies/:id
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	if err := h.usecase.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return response.FromError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseFilter(c echo.Context) (movies.MovieFilter, error) {
	filter := movies.MovieFilter{
		Status: movies.Status(c.QueryParam("status")),
		Search: c.QueryParam("search"),
		Genre:  c.QueryParam("genre"),
		SortBy: c.QueryParam("sort_by"),
	}

	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Year = &year
	}
	if v := c.QueryParam("min_rating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, err
		}
		filter.MinRating = &minRating
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.Featured = &featured
	}

	return filter, nil
}
