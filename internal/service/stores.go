// Package service holds the business logic behind the API operations:
// account registration/login, the ownership-gated movie catalog and the
// rating aggregation workflow. Services depend on small store interfaces so
// tests can run against in-memory fakes.
package service

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// UserStore is the slice of the user repository the account service needs.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// MovieStore is the slice of the movie repository the catalog and rating
// services need.
type MovieStore interface {
	Insert(ctx context.Context, m model.Movie) (model.Movie, error)
	GetByID(ctx context.Context, id string) (model.Movie, error)
	FindByTitle(ctx context.Context, title string) ([]model.Movie, error)
	Replace(ctx context.Context, m model.Movie) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q repository.MovieQuery) ([]model.Movie, int64, error)
}

// RatingEventPublisher pushes rating events to the message broker. May be nil
// when no broker is configured; publish failures never fail the request.
type RatingEventPublisher interface {
	PublishRatingSubmitted(ctx context.Context, ev queue.RatingSubmittedEvent) error
}
