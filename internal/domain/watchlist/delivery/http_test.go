package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type stubUsecase struct {
	inList     bool
	addErr     error
	alreadyHad bool
}

func (s *stubUsecase) AddToWatchlist(_ context.Context, _, movieID string) ([]string, bool, error) {
	if s.addErr != nil {
		return nil, false, s.addErr
	}
	return []string{movieID}, !s.alreadyHad, nil
}

func (s *stubUsecase) RemoveFromWatchlist(_ context.Context, _, _ string) ([]string, error) {
	return []string{}, nil
}

func (s *stubUsecase) GetWatchlist(_ context.Context, _ string) ([]movies.Movie, error) {
	return []movies.Movie{}, nil
}

func (s *stubUsecase) IsInWatchlist(_ context.Context, _, _ string) bool {
	return s.inList
}

func newContext(e *echo.Echo, method string, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(httptest.NewRequest(method, "/", nil), rec)
	c.SetParamNames("user_key", "movie_id")
	c.SetParamValues("ana@example.com", "mov_1")
	return c
}

func TestCheckWatchlist(t *testing.T) {
	e := echo.New()
	h := NewWatchlistHandler(&stubUsecase{inList: true})

	rec := httptest.NewRecorder()
	if err := h.CheckWatchlist(newContext(e, http.MethodGet, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body struct {
		Data struct {
			InWatchlist bool `json:"in_watchlist"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || !body.Data.InWatchlist {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAddToWatchlistMapsNotFound(t *testing.T) {
	e := echo.New()
	h := NewWatchlistHandler(&stubUsecase{addErr: response.NewError(http.StatusNotFound, "user_not_found", nil)})

	rec := httptest.NewRecorder()
	if err := h.AddToWatchlist(newContext(e, http.MethodPost, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAddToWatchlistMessage(t *testing.T) {
	e := echo.New()

	for _, tc := range []struct {
		alreadyHad bool
		want       string
	}{
		{false, "Movie added to watchlist"},
		{true, "Movie already in watchlist"},
	} {
		h := NewWatchlistHandler(&stubUsecase{alreadyHad: tc.alreadyHad})
		rec := httptest.NewRecorder()
		if err := h.AddToWatchlist(newContext(e, http.MethodPost, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		var body struct {
			Data struct {
				Message   string   `json:"message"`
				Watchlist []string `json:"watchlist"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Message != tc.want {
			t.Fatalf("message = %q, want %q", body.Data.Message, tc.want)
		}
		if len(body.Data.Watchlist) != 1 {
			t.Fatalf("watchlist = %v", body.Data.Watchlist)
		}
	}
}
