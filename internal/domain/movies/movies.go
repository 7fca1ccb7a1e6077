package movies

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the moderation state of a movie
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CastMember is one credited actor
type CastMember struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}

// Movie is a catalog entry. Genres and Cast are stored as JSON columns so the row
// reads back as one document.
type Movie struct {
	ID          string                          `json:"id" gorm:"primaryKey;type:varchar(40)"`
	Title       string                          `json:"title" gorm:"type:varchar(255);not null"`
	Description string                          `json:"description" gorm:"type:text;not null"`
	Genres      datatypes.JSONSlice[string]     `json:"genres"`
	ReleaseDate *string                         `json:"release_date" gorm:"type:varchar(32)"`
	Duration    *int                            `json:"duration"`
	PosterURL   *string                         `json:"poster_url" gorm:"type:varchar(512)"`
	TrailerURL  *string                         `json:"trailer_url" gorm:"type:varchar(512)"`
	Director    *string                         `json:"director" gorm:"type:varchar(255)"`
	Cast        datatypes.JSONSlice[CastMember] `json:"cast"`
	Language    *string                         `json:"language" gorm:"type:varchar(64)"`
	Country     *string                         `json:"country" gorm:"type:varchar(64)"`
	AgeRating   *string                         `json:"age_rating" gorm:"type:varchar(16)"`
	Rating      *float64                        `json:"rating"`
	SubmittedBy *string                         `json:"submitted_by" gorm:"type:varchar(255)"`
	Status      Status                          `json:"status" gorm:"type:varchar(16);not null;index"`
	Featured    bool                            `json:"featured" gorm:"not null;default:false;index"`
	CreatedAt   time.Time                       `json:"created_at" gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time                       `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName overrides the table name for Movie
func (Movie) TableName() string {
	return "movies"
}

// Sort keys accepted by MovieFilter.SortBy
const (
	SortByCreatedAt = "created_at"
	SortByRating    = "rating"
	SortByTitle     = "title"
)

// MovieFilter selects and orders movies for ListMovies. Nil pointers are unset options.
type MovieFilter struct {
	Status    Status
	Search    string
	Genre     string
	Year      *int
	MinRating *float64
	Featured  *bool
	SortBy    string
}

// MovieQuery is the predicate pushed down to the store: equality on indexed fields.
type MovieQuery struct {
	Status   Status
	Featured *bool
}

// Request DTOs

// CreateMovieRequest represents a new movie submission
type CreateMovieRequest struct {
	Title       string       `json:"title" validate:"required,max=255"`
	Description string       `json:"description" validate:"required"`
	Genres      []string     `json:"genres" validate:"required,min=1,dive,required"`
	ReleaseDate *string      `json:"release_date" validate:"omitempty,min=4"` // YYYY-MM-DD or ISO prefix
	Duration    *int         `json:"duration" validate:"omitempty,min=1"`
	PosterURL   *string      `json:"poster_url" validate:"omitempty,url"`
	TrailerURL  *string      `json:"trailer_url" validate:"omitempty,url"`
	Director    *string      `json:"director" validate:"omitempty,max=255"`
	Cast        []CastMember `json:"cast" validate:"omitempty,dive"`
	Language    *string      `json:"language" validate:"omitempty,max=64"`
	Country     *string      `json:"country" validate:"omitempty,max=64"`
	AgeRating   *string      `json:"age_rating" validate:"omitempty,max=16"`
	SubmittedBy *string      `json:"submitted_by" validate:"omitempty,max=255"`
}

// Response DTOs

// FeaturedResponse is returned by the featured toggle
type FeaturedResponse struct {
	MovieID  string `json:"movie_id"`
	Featured bool   `json:"featured"`
}

// ModerationResponse is returned by approve/reject
type ModerationResponse struct {
	MovieID string `json:"movie_id"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}
