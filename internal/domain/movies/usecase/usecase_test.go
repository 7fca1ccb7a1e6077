package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/pkg/response"
	"github.com/stretchr/testify/require"
)

type memoryMovieRepo struct {
	movies  map[string]movies.Movie
	saveErr error
}

func newMemoryMovieRepo() *memoryMovieRepo {
	return &memoryMovieRepo{movies: map[string]movies.Movie{}}
}

func (r *memoryMovieRepo) CreateMovie(_ context.Context, movie *movies.Movie) error {
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepo) FindMovieByID(_ context.Context, movieID string) (*movies.Movie, error) {
	m, ok := r.movies[movieID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memoryMovieRepo) FindMovies(_ context.Context, q movies.MovieQuery) ([]movies.Movie, error) {
	var out []movies.Movie
	for _, m := range r.movies {
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		if q.Featured != nil && m.Featured != *q.Featured {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryMovieRepo) SaveMovie(_ context.Context, movie *movies.Movie) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepo) DeleteMovie(_ context.Context, movieID string) error {
	delete(r.movies, movieID)
	return nil
}

type reviewCascade struct {
	deleted []string
}

func (r *reviewCascade) DeleteReviewsByMovie(_ context.Context, movieID string) error {
	r.deleted = append(r.deleted, movieID)
	return nil
}

type fakePosterStorage struct {
	uploaded  []string
	deleteErr error
	deleted   []string
}

func (s *fakePosterStorage) UploadPoster(_ context.Context, movieID string, _ io.Reader, _ int64, _, ext string) (string, error) {
	s.uploaded = append(s.uploaded, movieID)
	return "http://posters.local/" + movieID + "/poster" + ext, nil
}

func (s *fakePosterStorage) DeletePosters(_ context.Context, movieID string) error {
	s.deleted = append(s.deleted, movieID)
	return s.deleteErr
}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestUsecase() (*MovieUsecase, *memoryMovieRepo, *reviewCascade, *fakePosterStorage) {
	repo := newMemoryMovieRepo()
	cascade := &reviewCascade{}
	store := &fakePosterStorage{}
	u := NewMovieUsecase(repo, cascade, store)
	clock := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	u.now = clock.now
	return u, repo, cascade, store
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func submit(t *testing.T, u *MovieUsecase, title string, genres ...string) *movies.Movie {
	t.Helper()
	m, err := u.SubmitMovie(context.Background(), movies.CreateMovieRequest{
		Title:       title,
		Description: title + " description",
		Genres:      genres,
	})
	require.NoError(t, err)
	return m
}

func TestSubmitMovieStartsPending(t *testing.T) {
	u, repo, _, _ := newTestUsecase()

	m := submit(t, u, "Heat", "Crime")

	require.True(t, strings.HasPrefix(m.ID, "mov_"))
	require.Equal(t, movies.StatusPending, m.Status)
	require.Nil(t, m.Rating)
	require.False(t, m.Featured)
	require.Equal(t, m.CreatedAt, m.UpdatedAt)
	require.NotNil(t, m.Cast)
	require.Contains(t, repo.movies, m.ID)
}

func TestSubmitMovieValidation(t *testing.T) {
	u, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	cases := map[string]movies.CreateMovieRequest{
		"missing title":    {Description: "d", Genres: []string{"Drama"}},
		"blank title":      {Title: "   ", Description: "d", Genres: []string{"Drama"}},
		"missing genres":   {Title: "t", Description: "d"},
		"empty genre":      {Title: "t", Description: "d", Genres: []string{""}},
		"zero duration":    {Title: "t", Description: "d", Genres: []string{"Drama"}, Duration: intPtr(0)},
		"invalid poster":   {Title: "t", Description: "d", Genres: []string{"Drama"}, PosterURL: strPtr("not a url")},
		"missing describe": {Title: "t", Genres: []string{"Drama"}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := u.SubmitMovie(ctx, req)
			require.ErrorIs(t, err, response.ErrValidation)
		})
	}
	require.Empty(t, repo.movies)
}

func TestModerationTransitions(t *testing.T) {
	u, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	m := submit(t, u, "Alien", "Horror")

	approved, err := u.ApproveMovie(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, movies.StatusApproved, approved.Status)
	require.True(t, approved.UpdatedAt.After(m.UpdatedAt))

	again, err := u.ApproveMovie(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, movies.StatusApproved, again.Status)
	require.True(t, again.UpdatedAt.After(approved.UpdatedAt))

	_, err = u.RejectMovie(ctx, m.ID)
	require.ErrorIs(t, err, response.ErrValidation)
	require.Equal(t, movies.StatusApproved, repo.movies[m.ID].Status)

	other := submit(t, u, "Aliens", "Horror")
	rejected, err := u.RejectMovie(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, movies.StatusRejected, rejected.Status)

	_, err = u.ApproveMovie(ctx, other.ID)
	require.ErrorIs(t, err, response.ErrValidation)
	require.Equal(t, movies.StatusRejected, repo.movies[other.ID].Status)

	again, err = u.RejectMovie(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, movies.StatusRejected, again.Status)
	require.True(t, again.UpdatedAt.After(rejected.UpdatedAt))

	_, err = u.ApproveMovie(ctx, "mov_missing")
	require.ErrorIs(t, err, response.ErrNotFound)
	_, err = u.RejectMovie(ctx, "mov_missing")
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestListMoviesDefaultsToApproved(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	pending := submit(t, u, "Pending", "Drama")
	approved := submit(t, u, "Approved", "Drama")
	rejected := submit(t, u, "Rejected", "Drama")
	_, err := u.ApproveMovie(ctx, approved.ID)
	require.NoError(t, err)
	_, err = u.RejectMovie(ctx, rejected.ID)
	require.NoError(t, err)

	list, err := u.ListMovies(ctx, movies.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, approved.ID, list[0].ID)

	queue, err := u.ListPendingMovies(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, pending.ID, queue[0].ID)

	// detail ignores moderation status
	detail, err := u.GetMovieDetail(ctx, rejected.ID)
	require.NoError(t, err)
	require.Equal(t, movies.StatusRejected, detail.Status)
}

func TestListMoviesRejectsUnknownOptions(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	_, err := u.ListMovies(ctx, movies.MovieFilter{Status: "archived"})
	require.ErrorIs(t, err, response.ErrValidation)

	_, err = u.ListMovies(ctx, movies.MovieFilter{SortBy: "popularity"})
	require.ErrorIs(t, err, response.ErrValidation)
}

func TestListMoviesFilters(t *testing.T) {
	u, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	seed := func(title string, genres []string, release *string, director *string, rating *float64, featured bool) string {
		m := submit(t, u, title, genres...)
		stored := repo.movies[m.ID]
		stored.Status = movies.StatusApproved
		stored.ReleaseDate = release
		stored.Director = director
		stored.Rating = rating
		stored.Featured = featured
		repo.movies[m.ID] = stored
		return m.ID
	}

	inception := seed("Inception", []string{"Sci-Fi", "Thriller"}, strPtr("2010-07-16"), strPtr("Christopher Nolan"), floatPtr(4.6), true)
	memento := seed("Memento", []string{"Thriller"}, strPtr("2000-09-05"), strPtr("Christopher Nolan"), nil, false)
	amelie := seed("Amelie", []string{"Romance"}, strPtr("unknown"), nil, floatPtr(3.9), false)

	ids := func(list []movies.Movie) []string {
		out := make([]string, 0, len(list))
		for _, m := range list {
			out = append(out, m.ID)
		}
		return out
	}

	list, err := u.ListMovies(ctx, movies.MovieFilter{Search: "nolan"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{inception, memento}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{Genre: "Thriller"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{inception, memento}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{Year: intPtr(2000)})
	require.NoError(t, err)
	require.Equal(t, []string{memento}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{MinRating: floatPtr(3.9)})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{inception, amelie}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, []string{inception}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{SortBy: movies.SortByRating})
	require.NoError(t, err)
	require.Equal(t, []string{inception, amelie, memento}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{SortBy: movies.SortByTitle})
	require.NoError(t, err)
	require.Equal(t, []string{amelie, inception, memento}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{Genre: "Thriller", MinRating: floatPtr(4.0), SortBy: movies.SortByTitle})
	require.NoError(t, err)
	require.Equal(t, []string{inception}, ids(list))

	list, err = u.ListMovies(ctx, movies.MovieFilter{Search: "NOLAN", Genre: "Thriller", SortBy: movies.SortByRating})
	require.NoError(t, err)
	require.Equal(t, []string{inception, memento}, ids(list))

	// newest first by default
	list, err = u.ListMovies(ctx, movies.MovieFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{amelie, memento, inception}, ids(list))
}

func TestToggleFeatured(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()
	m := submit(t, u, "Up", "Animation")

	featured, err := u.ToggleFeatured(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, featured)

	featured, err = u.ToggleFeatured(ctx, m.ID)
	require.NoError(t, err)
	require.False(t, featured)

	_, err = u.ToggleFeatured(ctx, "mov_missing")
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestDeleteMovieCascades(t *testing.T) {
	u, repo, cascade, store := newTestUsecase()
	ctx := context.Background()
	m := submit(t, u, "Jaws", "Thriller")
	store.deleteErr = errors.New("bucket offline")

	require.NoError(t, u.DeleteMovie(ctx, m.ID))
	require.NotContains(t, repo.movies, m.ID)
	require.Equal(t, []string{m.ID}, cascade.deleted)
	require.Equal(t, []string{m.ID}, store.deleted)

	require.ErrorIs(t, u.DeleteMovie(ctx, m.ID), response.ErrNotFound)
}

func TestUploadPoster(t *testing.T) {
	u, _, _, store := newTestUsecase()
	ctx := context.Background()
	m := submit(t, u, "Coco", "Animation")

	_, err := u.UploadPoster(ctx, m.ID, strings.NewReader("x"), 1, "text/plain", "notes.txt")
	require.ErrorIs(t, err, response.ErrValidation)

	updated, err := u.UploadPoster(ctx, m.ID, strings.NewReader("png"), 3, "image/png", "coco.png")
	require.NoError(t, err)
	require.NotNil(t, updated.PosterURL)
	require.Equal(t, "http://posters.local/"+m.ID+"/poster.png", *updated.PosterURL)
	require.Equal(t, []string{m.ID}, store.uploaded)

	_, err = u.UploadPoster(ctx, "mov_missing", strings.NewReader("png"), 3, "image/png", "x.png")
	require.ErrorIs(t, err, response.ErrNotFound)

	disabled := NewMovieUsecase(newMemoryMovieRepo(), &reviewCascade{}, nil)
	_, err = disabled.UploadPoster(ctx, m.ID, strings.NewReader("png"), 3, "image/png", "x.png")
	require.Error(t, err)
}

func TestSaveFailureIsStoreError(t *testing.T) {
	u, repo, _, _ := newTestUsecase()
	m := submit(t, u, "Rocky", "Drama")
	repo.saveErr = errors.New("connection reset")

	_, err := u.ApproveMovie(context.Background(), m.ID)
	require.ErrorIs(t, err, response.ErrStore)
}

func TestReleaseYear(t *testing.T) {
	year, ok := ReleaseYear(strPtr("1994-10-14"))
	require.True(t, ok)
	require.Equal(t, 1994, year)

	for _, v := range []*string{nil, strPtr("94"), strPtr("TBA-2025")} {
		_, ok := ReleaseYear(v)
		require.False(t, ok)
	}
}
