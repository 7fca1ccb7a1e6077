package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/internal/domain/users"
	"github.com/martinmanurung/cinecheck/internal/domain/watchlist"
	"github.com/martinmanurung/cinecheck/pkg/response"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the movie lookups made for one watchlist
const maxConcurrentFetches = 8

type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
	SaveUser(ctx context.Context, user *users.User) error
}

type MovieRepository interface {
	FindMovieByID(ctx context.Context, movieID string) (*movies.Movie, error)
}

type WatchlistUsecase struct {
	userRepo  UserRepository
	movieRepo MovieRepository
	now       func() time.Time
}

func NewWatchlistUsecase(userRepo UserRepository, movieRepo MovieRepository) *WatchlistUsecase {
	return &WatchlistUsecase{
		userRepo:  userRepo,
		movieRepo: movieRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddToWatchlist appends movieID unless already present and returns the full list.
// added is false when the movie was already on the list.
func (u *WatchlistUsecase) AddToWatchlist(ctx context.Context, userKey, movieID string) (list []string, added bool, err error) {
	user, err := u.requireUser(ctx, userKey)
	if err != nil {
		return nil, false, err
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, false, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, false, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	if watchlist.Contains(user.Watchlist, movieID) {
		return listOf(user), false, nil
	}

	user.Watchlist = append(user.Watchlist, movieID)
	user.UpdatedAt = u.now()
	if err := u.userRepo.SaveUser(ctx, user); err != nil {
		return nil, false, response.InternalServerError(err)
	}

	return listOf(user), true, nil
}

// RemoveFromWatchlist drops movieID and returns the remaining list
func (u *WatchlistUsecase) RemoveFromWatchlist(ctx context.Context, userKey, movieID string) ([]string, error) {
	user, err := u.requireUser(ctx, userKey)
	if err != nil {
		return nil, err
	}

	idx := watchlist.IndexOf(user.Watchlist, movieID)
	if idx < 0 {
		return nil, response.NewError(http.StatusBadRequest, "movie_not_in_watchlist", nil)
	}

	user.Watchlist = append(user.Watchlist[:idx:idx], user.Watchlist[idx+1:]...)
	user.UpdatedAt = u.now()
	if err := u.userRepo.SaveUser(ctx, user); err != nil {
		return nil, response.InternalServerError(err)
	}

	return listOf(user), nil
}

// GetWatchlist returns the approved movies on the user's list in list order. An
// unknown user has an empty list; ids that no longer resolve are skipped.
func (u *WatchlistUsecase) GetWatchlist(ctx context.Context, userKey string) ([]movies.Movie, error) {
	user, err := u.userRepo.FindUserByEmail(ctx, normalizeKey(userKey))
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil || len(user.Watchlist) == 0 {
		return []movies.Movie{}, nil
	}

	found := make([]*movies.Movie, len(user.Watchlist))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, movieID := range user.Watchlist {
		g.Go(func() error {
			movie, err := u.movieRepo.FindMovieByID(gctx, movieID)
			if err != nil {
				return err
			}
			found[i] = movie
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, response.InternalServerError(err)
	}

	result := make([]movies.Movie, 0, len(found))
	for _, movie := range found {
		if movie != nil && movie.Status == movies.StatusApproved {
			result = append(result, *movie)
		}
	}
	return result, nil
}

// IsInWatchlist never fails: any lookup error reads as false
func (u *WatchlistUsecase) IsInWatchlist(ctx context.Context, userKey, movieID string) bool {
	user, err := u.userRepo.FindUserByEmail(ctx, normalizeKey(userKey))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Watchlist check lookup failed")
		return false
	}
	if user == nil {
		return false
	}
	return watchlist.Contains(user.Watchlist, movieID)
}

func (u *WatchlistUsecase) requireUser(ctx context.Context, userKey string) (*users.User, error) {
	user, err := u.userRepo.FindUserByEmail(ctx, normalizeKey(userKey))
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}
	return user, nil
}

func listOf(user *users.User) []string {
	out := make([]string, len(user.Watchlist))
	copy(out, user.Watchlist)
	return out
}

// user keys are emails, stored lower-cased at signup
func normalizeKey(userKey string) string {
	return strings.ToLower(strings.TrimSpace(userKey))
}
