package repository

import (
	"context"
	"errors"

	"github.com/martinmanurung/cinecheck/internal/domain/reviews"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *reviews.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) SaveReview(ctx context.Context, review *reviews.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// FindReviewByID returns nil, nil when the review does not exist
func (r *ReviewRepository) FindReviewByID(ctx context.Context, reviewID string) (*reviews.Review, error) {
	var review reviews.Review
	err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// FindReviewByMovieAndUser returns nil, nil when the user has not reviewed the movie
func (r *ReviewRepository) FindReviewByMovieAndUser(ctx context.Context, movieID, userID string) (*reviews.Review, error) {
	var review reviews.Review
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// FindReviewsByMovie returns the movie's reviews, newest first
func (r *ReviewRepository) FindReviewsByMovie(ctx context.Context, movieID string) ([]reviews.Review, error) {
	var result []reviews.Review
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// FindReviewsByUser returns the user's reviews, newest first
func (r *ReviewRepository) FindReviewsByUser(ctx context.Context, userID string) ([]reviews.Review, error) {
	var result []reviews.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&reviews.Review{}).Error
}

func (r *ReviewRepository) DeleteReviewsByMovie(ctx context.Context, movieID string) error {
	return r.db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&reviews.Review{}).Error
}
