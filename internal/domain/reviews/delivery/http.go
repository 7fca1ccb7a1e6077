package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/reviews"
	"github.com/martinmanurung/cinecheck/pkg/middleware"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type ReviewUsecase interface {
	UpsertReview(ctx context.Context, req reviews.UpsertReviewRequest) (*reviews.Review, error)
	DeleteReview(ctx context.Context, reviewID, requestingUserID string) error
	ListMovieReviews(ctx context.Context, movieID string) ([]reviews.Review, error)
	ListUserReviews(ctx context.Context, userID string) ([]reviews.Review, error)
}

type ReviewHandler struct {
	usecase ReviewUsecase
}

func NewReviewHandler(usecase ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{usecase: usecase}
}

// UpsertReview creates or updates the caller's review
// POST /api/v1/reviews
func (h *ReviewHandler) UpsertReview(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req reviews.UpsertReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.UpsertReview(c.Request().Context(), req)
	if err != nil {
		logger.Warn().Err(err).Str("movie_id", req.MovieID).Msg("Review upsert failed")
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "review_saved", result)
}

// GetMovieReviews
// GET /api/v1/reviews/movie/:movie_id
func (h *ReviewHandler) GetMovieReviews(c echo.Context) error {
	result, err := h.usecase.ListMovieReviews(c.Request().Context(), c.Param("movie_id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// GetUserReviews
// GET /api/v1/reviews/user/:user_id
func (h *ReviewHandler) GetUserReviews(c echo.Context) error {
	result, err := h.usecase.ListUserReviews(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// DeleteReview deletes a review owned by ?user_id=
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	if err := h.usecase.DeleteReview(c.Request().Context(), c.Param("id"), c.QueryParam("user_id")); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "review_deleted_successfully", nil)
}
