package main // Entry point package

import (
	"context"
	"log"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/graph"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/pubsub"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()
	logger.Init(cfg.Log)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("connect mongodb: %v", err)
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure user indexes: %v", err)
	}
	if err := movies.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure movie indexes: %v", err)
	}

	hub := pubsub.NewHub()
	resolver := &graph.Resolver{
		Accounts: service.NewAccountService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost),
		Catalog: service.NewCatalogService(movies, validator.MoviePolicy{
			AllowFutureReleaseDate: cfg.AllowFutureReleaseDate,
		}),
		Ratings: service.NewRatingService(movies, hub, queue.NewPublisherFromEnv()),
		Hub:     hub,
	}
	schema := graphql.MustParseSchema(graph.Schema, resolver)
	gql := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})

	// Background feed of submitted ratings from the broker into logs/.
	go queue.StartRatingConsumer()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, gql, config.NewRedisClient())

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
