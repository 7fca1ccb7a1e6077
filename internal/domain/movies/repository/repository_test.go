package repository

import (
	"context"
	"testing"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&movies.Movie{}))
	return db
}

func seedMovie(t *testing.T, repo *MovieRepository, id string, status movies.Status, featured bool, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.CreateMovie(context.Background(), &movies.Movie{
		ID:          id,
		Title:       "Movie " + id,
		Description: "about " + id,
		Genres:      []string{"Drama"},
		Cast:        []movies.CastMember{{Name: "Someone", Role: "Lead"}},
		Status:      status,
		Featured:    featured,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}))
}

func TestMovieRepositoryRoundTrip(t *testing.T) {
	repo := NewMovieRepository(openTestDB(t))
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	seedMovie(t, repo, "mov_1", movies.StatusPending, false, created)

	got, err := repo.FindMovieByID(ctx, "mov_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, []string{"Drama"}, []string(got.Genres))
	require.Equal(t, "Someone", got.Cast[0].Name)
	require.Nil(t, got.Rating)
	require.True(t, created.Equal(got.CreatedAt))

	rating := 4.5
	got.Rating = &rating
	got.Status = movies.StatusApproved
	require.NoError(t, repo.SaveMovie(ctx, got))

	again, err := repo.FindMovieByID(ctx, "mov_1")
	require.NoError(t, err)
	require.Equal(t, movies.StatusApproved, again.Status)
	require.Equal(t, 4.5, *again.Rating)

	missing, err := repo.FindMovieByID(ctx, "mov_missing")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestMovieRepositoryFindMovies(t *testing.T) {
	repo := NewMovieRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedMovie(t, repo, "mov_old", movies.StatusApproved, true, base)
	seedMovie(t, repo, "mov_new", movies.StatusApproved, false, base.Add(time.Hour))
	seedMovie(t, repo, "mov_pending", movies.StatusPending, false, base.Add(2*time.Hour))

	list, err := repo.FindMovies(ctx, movies.MovieQuery{Status: movies.StatusApproved})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "mov_new", list[0].ID)
	require.Equal(t, "mov_old", list[1].ID)

	featured := true
	list, err = repo.FindMovies(ctx, movies.MovieQuery{Status: movies.StatusApproved, Featured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "mov_old", list[0].ID)

	require.NoError(t, repo.DeleteMovie(ctx, "mov_old"))
	require.NoError(t, repo.DeleteMovie(ctx, "mov_old"))
	list, err = repo.FindMovies(ctx, movies.MovieQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestUpdateMovieRatingLeavesOtherColumns(t *testing.T) {
	repo := NewMovieRepository(openTestDB(t))
	ctx := context.Background()
	seedMovie(t, repo, "mov_1", movies.StatusPending, false, time.Now().UTC())

	stale, err := repo.FindMovieByID(ctx, "mov_1")
	require.NoError(t, err)

	fresh := *stale
	fresh.Status = movies.StatusApproved
	fresh.Featured = true
	require.NoError(t, repo.SaveMovie(ctx, &fresh))

	rating := 3.7
	require.NoError(t, repo.UpdateMovieRating(ctx, "mov_1", &rating))

	got, err := repo.FindMovieByID(ctx, "mov_1")
	require.NoError(t, err)
	require.Equal(t, movies.StatusApproved, got.Status)
	require.True(t, got.Featured)
	require.Equal(t, 3.7, *got.Rating)

	require.NoError(t, repo.UpdateMovieRating(ctx, "mov_1", nil))
	got, err = repo.FindMovieByID(ctx, "mov_1")
	require.NoError(t, err)
	require.Nil(t, got.Rating)
	require.Equal(t, movies.StatusApproved, got.Status)
}
