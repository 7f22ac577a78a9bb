package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// Register wires all routes on the provided Echo instance. The GraphQL
// handler serves queries and mutations over POST and upgrades GET requests to
// the subscription websocket; both share the identity and rate-limit
// middleware. Per-operation authentication happens inside the resolvers, so
// /graphql itself accepts anonymous requests (register, login, subscription).
func Register(e *echo.Echo, cfg config.Config, gql http.Handler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/graphql")
	g.Use(middleware.Identity(cfg.JWTSecret))
	g.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	g.Any("", echo.WrapHandler(gql))
}
