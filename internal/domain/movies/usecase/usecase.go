package usecase

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/pkg/response"
	"github.com/martinmanurung/cinecheck/pkg/validator"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

type MovieRepository interface {
	CreateMovie(ctx context.Context, movie *movies.Movie) error
	FindMovieByID(ctx context.Context, movieID string) (*movies.Movie, error)
	FindMovies(ctx context.Context, q movies.MovieQuery) ([]movies.Movie, error)
	SaveMovie(ctx context.Context, movie *movies.Movie) error
	DeleteMovie(ctx context.Context, movieID string) error
}

// ReviewRepository is the slice of the review store needed to cascade movie deletion
type ReviewRepository interface {
	DeleteReviewsByMovie(ctx context.Context, movieID string) error
}

type StorageService interface {
	UploadPoster(ctx context.Context, movieID string, file io.Reader, size int64, contentType, ext string) (string, error)
	DeletePosters(ctx context.Context, movieID string) error
}

type MovieUsecase struct {
	repo           MovieRepository
	reviewRepo     ReviewRepository
	storageService StorageService
	now            func() time.Time
}

// NewMovieUsecase wires the movie service. storageService may be nil, which disables poster uploads.
func NewMovieUsecase(repo MovieRepository, reviewRepo ReviewRepository, storageService StorageService) *MovieUsecase {
	return &MovieUsecase{
		repo:           repo,
		reviewRepo:     reviewRepo,
		storageService: storageService,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// SubmitMovie creates a movie in pending status
func (u *MovieUsecase) SubmitMovie(ctx context.Context, req movies.CreateMovieRequest) (*movies.Movie, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, response.NewError(http.StatusBadRequest, "validation_failed", err.Error())
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, response.NewError(http.StatusBadRequest, "title_and_description_required", nil)
	}

	cast := req.Cast
	if cast == nil {
		cast = []movies.CastMember{}
	}

	now := u.now()
	movie := &movies.Movie{
		ID:          "mov_" + ksuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Genres:      req.Genres,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
		TrailerURL:  req.TrailerURL,
		Director:    req.Director,
		Cast:        cast,
		Language:    req.Language,
		Country:     req.Country,
		AgeRating:   req.AgeRating,
		Rating:      nil,
		SubmittedBy: req.SubmittedBy,
		Status:      movies.StatusPending,
		Featured:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.repo.CreateMovie(ctx, movie); err != nil {
		return nil, response.InternalServerError(err)
	}

	log.Ctx(ctx).Info().Str("movie_id", movie.ID).Msg("Movie submitted for moderation")
	return movie, nil
}

// GetMovieDetail returns a movie regardless of status
func (u *MovieUsecase) GetMovieDetail(ctx context.Context, movieID string) (*movies.Movie, error) {
	return u.findMovie(ctx, movieID)
}

// ListMovies returns every movie matching filter, ordered by filter.SortBy
func (u *MovieUsecase) ListMovies(ctx context.Context, filter movies.MovieFilter) ([]movies.Movie, error) {
	if filter.Status == "" {
		filter.Status = movies.StatusApproved
	}
	if !filter.Status.Valid() {
		return nil, response.NewError(http.StatusBadRequest, "invalid_status", string(filter.Status))
	}
	if filter.SortBy == "" {
		filter.SortBy = movies.SortByCreatedAt
	}
	switch filter.SortBy {
	case movies.SortByCreatedAt, movies.SortByRating, movies.SortByTitle:
	default:
		return nil, response.NewError(http.StatusBadRequest, "invalid_sort_by", filter.SortBy)
	}

	candidates, err := u.repo.FindMovies(ctx, movies.MovieQuery{
		Status:   filter.Status,
		Featured: filter.Featured,
	})
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	result := make([]movies.Movie, 0, len(candidates))
	for _, m := range candidates {
		if matchesFilter(m, filter) {
			result = append(result, m)
		}
	}

	sortMovies(result, filter.SortBy)
	return result, nil
}

// ListPendingMovies returns the moderation queue (Admin only)
func (u *MovieUsecase) ListPendingMovies(ctx context.Context) ([]movies.Movie, error) {
	return u.ListMovies(ctx, movies.MovieFilter{Status: movies.StatusPending})
}

// ApproveMovie moves a movie to approved (Admin only)
func (u *MovieUsecase) ApproveMovie(ctx context.Context, movieID string) (*movies.Movie, error) {
	return u.setStatus(ctx, movieID, movies.StatusApproved)
}

// RejectMovie moves a movie to rejected (Admin only)
func (u *MovieUsecase) RejectMovie(ctx context.Context, movieID string) (*movies.Movie, error) {
	return u.setStatus(ctx, movieID, movies.StatusRejected)
}

// setStatus moves a pending movie to status. approved and rejected are terminal; repeating
// the current status still persists and advances updated_at.
func (u *MovieUsecase) setStatus(ctx context.Context, movieID string, status movies.Status) (*movies.Movie, error) {
	movie, err := u.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie.Status != movies.StatusPending && movie.Status != status {
		return nil, response.NewError(http.StatusBadRequest, "invalid_status_transition",
			string(movie.Status)+" -> "+string(status))
	}

	movie.Status = status
	movie.UpdatedAt = u.now()

	if err := u.repo.SaveMovie(ctx, movie); err != nil {
		return nil, response.InternalServerError(err)
	}

	log.Ctx(ctx).Info().Str("movie_id", movieID).Str("status", string(status)).Msg("Movie moderated")
	return movie, nil
}

// ToggleFeatured flips the featured flag and returns the new value (Admin only)
func (u *MovieUsecase) ToggleFeatured(ctx context.Context, movieID string) (bool, error) {
	movie, err := u.findMovie(ctx, movieID)
	if err != nil {
		return false, err
	}

	movie.Featured = !movie.Featured
	movie.UpdatedAt = u.now()

	if err := u.repo.SaveMovie(ctx, movie); err != nil {
		return false, response.InternalServerError(err)
	}

	return movie.Featured, nil
}

// UploadPoster stores a poster image and points poster_url at it
func (u *MovieUsecase) UploadPoster(ctx context.Context, movieID string, file io.Reader, size int64, contentType, filename string) (*movies.Movie, error) {
	if u.storageService == nil {
		return nil, response.NewError(http.StatusServiceUnavailable, "poster_storage_unavailable", nil)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, response.NewError(http.StatusBadRequest, "poster_must_be_image", contentType)
	}

	movie, err := u.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	url, err := u.storageService.UploadPoster(ctx, movieID, file, size, contentType, filepath.Ext(filename))
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	movie.PosterURL = &url
	movie.UpdatedAt = u.now()

	if err := u.repo.SaveMovie(ctx, movie); err != nil {
		return nil, response.InternalServerError(err)
	}

	return movie, nil
}

// DeleteMovie removes a movie with its reviews and posters (Admin only)
func (u *MovieUsecase) DeleteMovie(ctx context.Context, movieID string) error {
	if _, err := u.findMovie(ctx, movieID); err != nil {
		return err
	}

	if err := u.reviewRepo.DeleteReviewsByMovie(ctx, movieID); err != nil {
		return response.InternalServerError(err)
	}

	if err := u.repo.DeleteMovie(ctx, movieID); err != nil {
		return response.InternalServerError(err)
	}

	if u.storageService != nil {
		if err := u.storageService.DeletePosters(ctx, movieID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("movie_id", movieID).Msg("Failed to delete poster objects")
		}
	}

	return nil
}

func (u *MovieUsecase) findMovie(ctx context.Context, movieID string) (*movies.Movie, error) {
	movie, err := u.repo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}
	return movie, nil
}

func matchesFilter(m movies.Movie, f movies.MovieFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		director := ""
		if m.Director != nil {
			director = *m.Director
		}
		if !strings.Contains(strings.ToLower(m.Title), needle) &&
			!strings.Contains(strings.ToLower(m.Description), needle) &&
			!strings.Contains(strings.ToLower(director), needle) {
			return false
		}
	}

	if f.Genre != "" && !containsString(m.Genres, f.Genre) {
		return false
	}

	if f.Year != nil {
		year, ok := ReleaseYear(m.ReleaseDate)
		if !ok || year != *f.Year {
			return false
		}
	}

	if f.MinRating != nil && (m.Rating == nil || *m.Rating < *f.MinRating) {
		return false
	}

	if f.Featured != nil && m.Featured != *f.Featured {
		return false
	}

	return true
}

// ReleaseYear parses the 4-digit year prefix of a release date.
func ReleaseYear(releaseDate *string) (int, bool) {
	if releaseDate == nil || len(*releaseDate) < 4 {
		return 0, false
	}
	prefix := (*releaseDate)[:4]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return year, true
}

func sortMovies(list []movies.Movie, sortBy string) {
	switch sortBy {
	case movies.SortByRating:
		sort.SliceStable(list, func(i, j int) bool {
			return ratingOrZero(list[i].Rating) > ratingOrZero(list[j].Rating)
		})
	case movies.SortByTitle:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
