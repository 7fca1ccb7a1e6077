package reviews

import "time"

const (
	MinRating = 1
	MaxRating = 5

	AnonymousUserID   = "anonymous"
	AnonymousUsername = "Anonymous"
)

// Review is one user's opinion of one movie. At most one exists per (MovieID, UserID).
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(40)"`
	MovieID    string    `json:"movie_id" gorm:"type:varchar(40);not null;uniqueIndex:idx_reviews_movie_user"`
	UserID     string    `json:"user_id" gorm:"type:varchar(255);not null;uniqueIndex:idx_reviews_movie_user;index"`
	Username   string    `json:"username" gorm:"type:varchar(255)"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText *string   `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime:false;index"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// UpsertReviewRequest creates or replaces the caller's review of a movie
type UpsertReviewRequest struct {
	MovieID    string  `json:"movie_id" validate:"required"`
	Rating     int     `json:"rating" validate:"min=1,max=5"`
	ReviewText *string `json:"review_text"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
}
