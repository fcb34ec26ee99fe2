// Package router wires the HTTP routes of the box-office API to their
// handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cinema-box-office/internal/config"
	"cinema-box-office/internal/handler"
	"cinema-box-office/internal/middleware"
	"cinema-box-office/internal/model"
)

// RegisterRoutes registers the unauthenticated endpoints: the health
// check and the Prometheus metrics.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers login, token refresh, logout and the identity
// endpoint.  Only /v1/me sits behind JWT authentication; the others
// establish or end a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterBoxOffice registers the showing, selling and history routes.
// Access mirrors the two employee roles: MANAGEMENT maintains the
// schedule, exports it and reads the sales history; SALES sells
// tickets against upcoming showings.  Both may inspect seat maps.
// Every route is rate limited; the list endpoints are additionally
// cached.  The Redis client may be nil, which turns both middlewares
// into pass-throughs.
func RegisterBoxOffice(e *echo.Echo, s *handler.ShowingHandler, b *handler.BookingHandler, hist *handler.HistoryHandler,
	jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {

	auth := middleware.JWTAuth(jwtSecret)
	mgmt := middleware.RequireAccessLevel(model.AccessLevelManagement)
	sales := middleware.RequireAccessLevel(model.AccessLevelSales)
	staff := middleware.RequireAccessLevel(model.AccessLevelManagement, model.AccessLevelSales)
	limit := middleware.RateLimit(rdb, rlCfg)
	cache := middleware.Cache(rdb, cacheCfg)

	// Schedule maintenance and reporting (MANAGEMENT).
	e.GET("/v1/showings", s.ListShowings, limit, auth, mgmt, cache)
	e.POST("/v1/showings", s.CreateShowing, limit, auth, mgmt)
	e.PUT("/v1/showings/:id", s.UpdateShowing, limit, auth, mgmt)
	e.DELETE("/v1/showings/:id", s.DeleteShowing, limit, auth, mgmt)
	e.GET("/v1/showings/export.csv", s.ExportShowingsCSV, limit, auth, mgmt)
	e.GET("/v1/sellings", hist.ListSellings, limit, auth, mgmt)

	// Shared lookups (both access levels).
	e.GET("/v1/showings/upcoming", s.ListUpcomingShowings, limit, auth, staff, cache)
	e.GET("/v1/showings/:id", s.GetShowing, limit, auth, staff)
	e.GET("/v1/showings/:id/seats", s.GetSeatMap, limit, auth, staff)

	// Selling (SALES).
	e.POST("/v1/showings/:id/sell", b.SellTickets, limit, auth, sales)
}
