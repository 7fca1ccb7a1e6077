package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	movieDelivery "github.com/martinmanurung/cinecheck/internal/domain/movies/delivery"
	reviewDelivery "github.com/martinmanurung/cinecheck/internal/domain/reviews/delivery"
	userDelivery "github.com/martinmanurung/cinecheck/internal/domain/users/delivery"
	watchlistDelivery "github.com/martinmanurung/cinecheck/internal/domain/watchlist/delivery"
	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"github.com/martinmanurung/cinecheck/pkg/jwt"
	appMiddleware "github.com/martinmanurung/cinecheck/pkg/middleware"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type handlers struct {
	user      *userDelivery.Handler
	movie     *movieDelivery.MovieHandler
	review    *reviewDelivery.ReviewHandler
	watchlist *watchlistDelivery.WatchlistHandler
}

func setupRoutes(e *echo.Echo, serverCfg config.ServerConfig, h handlers, jwtService *jwt.JWTService) {
	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(serverCfg.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = response.CustomErrorHandler

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.user.Signup)
		auth.POST("/login", h.user.Login)
	}

	users := v1.Group("/users")
	{
		users.GET("/me", h.user.GetMe, jwtService.JWTMiddleware())
		users.GET("/:email", h.user.GetProfile)
		users.PUT("/:email", h.user.UpdateProfile)
	}

	movies := v1.Group("/movies")
	{
		movies.GET("", h.movie.GetMovieList)             // GET /api/v1/movies?genre=Drama&sort_by=rating
		movies.POST("", h.movie.CreateMovie)             // submitted movies start pending
		movies.GET("/:id", h.movie.GetMovieDetail)       // any status
		movies.POST("/:id/poster", h.movie.UploadPoster) // multipart field "poster"
	}

	reviews := v1.Group("/reviews")
	{
		reviews.POST("", h.review.UpsertReview)
		reviews.GET("/movie/:movie_id", h.review.GetMovieReviews)
		reviews.GET("/user/:user_id", h.review.GetUserReviews)
		reviews.DELETE("/:id", h.review.DeleteReview) // DELETE /api/v1/reviews/:id?user_id=
	}

	watchlist := v1.Group("/watchlist")
	{
		watchlist.GET("/:user_key", h.watchlist.GetWatchlist)
		watchlist.POST("/:user_key/add/:movie_id", h.watchlist.AddToWatchlist)
		watchlist.DELETE("/:user_key/remove/:movie_id", h.watchlist.RemoveFromWatchlist)
		watchlist.GET("/:user_key/check/:movie_id", h.watchlist.CheckWatchlist)
	}

	// Admin routes (Protected with JWT + AdminOnly middleware)
	admin := v1.Group("/admin")
	admin.Use(jwtService.JWTMiddleware(), appMiddleware.AdminOnly())
	{
		adminMovies := admin.Group("/movies")
		{
			adminMovies.GET("/pending", h.movie.GetPendingMovies)
			adminMovies.POST("/:id/approve", h.movie.ApproveMovie)
			adminMovies.POST("/:id/reject", h.movie.RejectMovie)
			adminMovies.POST("/:id/featured", h.movie.ToggleFeatured)
			adminMovies.DELETE("/:id", h.movie.DeleteMovie)
		}
	}
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
