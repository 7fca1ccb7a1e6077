package usecase

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/internal/domain/reviews"
	"github.com/martinmanurung/cinecheck/pkg/response"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *reviews.Review) error
	SaveReview(ctx context.Context, review *reviews.Review) error
	FindReviewByID(ctx context.Context, reviewID string) (*reviews.Review, error)
	FindReviewByMovieAndUser(ctx context.Context, movieID, userID string) (*reviews.Review, error)
	FindReviewsByMovie(ctx context.Context, movieID string) ([]reviews.Review, error)
	FindReviewsByUser(ctx context.Context, userID string) ([]reviews.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type MovieRepository interface {
	FindMovieByID(ctx context.Context, movieID string) (*movies.Movie, error)
	UpdateMovieRating(ctx context.Context, movieID string, rating *float64) error
}

// RatingPublisher hands a movie to the reconciliation worker
type RatingPublisher interface {
	PublishRatingJob(ctx context.Context, movieID string) error
}

type ReviewUsecase struct {
	repo      ReviewRepository
	movieRepo MovieRepository
	publisher RatingPublisher
	now       func() time.Time
}

// NewReviewUsecase wires the review service. publisher may be nil.
func NewReviewUsecase(repo ReviewRepository, movieRepo MovieRepository, publisher RatingPublisher) *ReviewUsecase {
	return &ReviewUsecase{
		repo:      repo,
		movieRepo: movieRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// UpsertReview creates the caller's review of a movie, or overwrites rating and text
// of the existing one. The movie rating is recomputed before returning.
func (u *ReviewUsecase) UpsertReview(ctx context.Context, req reviews.UpsertReviewRequest) (*reviews.Review, error) {
	if req.Rating < reviews.MinRating || req.Rating > reviews.MaxRating {
		return nil, response.NewError(http.StatusBadRequest, "rating_must_be_between_1_and_5", req.Rating)
	}
	if req.UserID == "" {
		req.UserID = reviews.AnonymousUserID
	}
	if req.Username == "" {
		req.Username = reviews.AnonymousUsername
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, req.MovieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	existing, err := u.repo.FindReviewByMovieAndUser(ctx, req.MovieID, req.UserID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	now := u.now()
	var review *reviews.Review
	if existing != nil {
		// username is a snapshot from the first write
		existing.Rating = req.Rating
		existing.ReviewText = req.ReviewText
		existing.UpdatedAt = now
		if err := u.repo.SaveReview(ctx, existing); err != nil {
			return nil, response.InternalServerError(err)
		}
		review = existing
	} else {
		review = &reviews.Review{
			ID:         "rev_" + ksuid.New().String(),
			MovieID:    req.MovieID,
			UserID:     req.UserID,
			Username:   req.Username,
			Rating:     req.Rating,
			ReviewText: req.ReviewText,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := u.repo.CreateReview(ctx, review); err != nil {
			return nil, response.InternalServerError(err)
		}
	}

	u.refreshRating(ctx, req.MovieID)
	return review, nil
}

// DeleteReview removes a review owned by requestingUserID
func (u *ReviewUsecase) DeleteReview(ctx context.Context, reviewID, requestingUserID string) error {
	if requestingUserID == "" {
		requestingUserID = reviews.AnonymousUserID
	}

	review, err := u.repo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if review == nil {
		return response.NewError(http.StatusNotFound, "review_not_found", nil)
	}
	if review.UserID != requestingUserID {
		return response.NewError(http.StatusForbidden, "not_authorized_to_delete_review", nil)
	}

	if err := u.repo.DeleteReview(ctx, reviewID); err != nil {
		return response.InternalServerError(err)
	}

	u.refreshRating(ctx, review.MovieID)
	return nil
}

// ListMovieReviews returns a movie's reviews, newest first
func (u *ReviewUsecase) ListMovieReviews(ctx context.Context, movieID string) ([]reviews.Review, error) {
	result, err := u.repo.FindReviewsByMovie(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return result, nil
}

// ListUserReviews returns a user's reviews, newest first
func (u *ReviewUsecase) ListUserReviews(ctx context.Context, userID string) ([]reviews.Review, error) {
	result, err := u.repo.FindReviewsByUser(ctx, userID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return result, nil
}

// RecomputeRating sets the movie rating to the rounded mean of all its reviews, or nil
// when it has none. A movie that no longer exists is skipped without error.
func (u *ReviewUsecase) RecomputeRating(ctx context.Context, movieID string) error {
	list, err := u.repo.FindReviewsByMovie(ctx, movieID)
	if err != nil {
		return response.InternalServerError(err)
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if movie == nil {
		log.Ctx(ctx).Warn().Str("movie_id", movieID).Msg("Movie vanished before rating recompute")
		return nil
	}

	ratings := make([]int, 0, len(list))
	for _, r := range list {
		ratings = append(ratings, r.Rating)
	}

	// only the rating column is written; status and featured belong to moderation
	if err := u.movieRepo.UpdateMovieRating(ctx, movieID, AverageRating(ratings)); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

// refreshRating is best-effort: recompute failures are logged, never returned.
func (u *ReviewUsecase) refreshRating(ctx context.Context, movieID string) {
	logger := log.Ctx(ctx)

	if err := u.RecomputeRating(ctx, movieID); err != nil {
		logger.Error().Err(err).Str("movie_id", movieID).Msg("Failed to recompute movie rating")
	}

	if u.publisher == nil {
		return
	}
	if err := u.publisher.PublishRatingJob(ctx, movieID); err != nil {
		logger.Warn().Err(err).Str("movie_id", movieID).Msg("Failed to publish rating job")
	}
}

// AverageRating is the mean of ratings rounded half away from zero to one decimal,
// or nil for an empty set.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}
