package repository

import (
	"context"
	"errors"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// CreateMovie inserts a new movie record
func (r *MovieRepository) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

// FindMovieByID returns nil, nil when the movie does not exist
func (r *MovieRepository) FindMovieByID(ctx context.Context, movieID string) (*movies.Movie, error) {
	var movie movies.Movie
	err := r.db.WithContext(ctx).Where("id = ?", movieID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// FindMovies returns movies matching q, newest first
func (r *MovieRepository) FindMovies(ctx context.Context, q movies.MovieQuery) ([]movies.Movie, error) {
	query := r.db.WithContext(ctx).Model(&movies.Movie{})

	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Featured != nil {
		query = query.Where("featured = ?", *q.Featured)
	}

	var result []movies.Movie
	if err := query.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// SaveMovie upserts the whole record by id
func (r *MovieRepository) SaveMovie(ctx context.Context, movie *movies.Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

// UpdateMovieRating writes only the rating column; a nil rating stores NULL
func (r *MovieRepository) UpdateMovieRating(ctx context.Context, movieID string, rating *float64) error {
	var value interface{}
	if rating != nil {
		value = *rating
	}
	return r.db.WithContext(ctx).
		Model(&movies.Movie{}).
		Where("id = ?", movieID).
		Update("rating", value).Error
}

// DeleteMovie removes the movie; deleting a missing id is not an error
func (r *MovieRepository) DeleteMovie(ctx context.Context, movieID string) error {
	return r.db.WithContext(ctx).Where("id = ?", movieID).Delete(&movies.Movie{}).Error
}
