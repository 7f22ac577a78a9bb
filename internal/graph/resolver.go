package graph

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/pubsub"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

// Resolver is the root resolver; one instance serves all requests.
type Resolver struct {
	Accounts *service.AccountService
	Catalog  *service.CatalogService
	Ratings  *service.RatingService
	Hub      *pubsub.Hub
}

// ----- account operations -----

type registerInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type loginInput struct {
	Username string
	Password string
}

func (r *Resolver) Register(ctx context.Context, args struct{ RegisterInput registerInput }) (*userResolver, error) {
	in := args.RegisterInput
	u, token, err := r.Accounts.Register(ctx, validator.RegisterInput{
		Username:        in.Username,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}
	return &userResolver{user: u, token: &token}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ LoginInput loginInput }) (*userResolver, error) {
	in := args.LoginInput
	u, token, err := r.Accounts.Login(ctx, validator.LoginInput{
		Username: in.Username,
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}
	return &userResolver{user: u, token: &token}, nil
}

func (r *Resolver) CurrentUser(ctx context.Context) (*userResolver, error) {
	id, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	u, err := r.Accounts.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &userResolver{user: u}, nil
}

// ----- field resolvers -----

type userResolver struct {
	user  model.User
	token *string // only set by register/login
}

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.user.ID.Hex()) }

func (r *userResolver) Username() string { return r.user.Username }

func (r *userResolver) Email() string { return r.user.Email }

func (r *userResolver) Token() *string { return r.token }

type movieResolver struct{ m model.Movie }

func (r *movieResolver) ID() graphql.ID { return graphql.ID(r.m.ID.Hex()) }

func (r *movieResolver) Title() string { return r.m.Title }

func (r *movieResolver) Duration() int32 { return r.m.Duration }

func (r *movieResolver) ReleaseDate() string { return r.m.ReleaseDate }

func (r *movieResolver) Actors() []string { return r.m.Actors }

func (r *movieResolver) CreatedAt() string { return r.m.CreatedAt.Format(time.RFC3339) }

func (r *movieResolver) RatingCount() int32 { return r.m.RatingCount }

func (r *movieResolver) Grade() int32 { return r.m.Grade }

func (r *movieResolver) Username() string { return r.m.Username }

func (r *movieResolver) User() graphql.ID { return graphql.ID(r.m.UserID.Hex()) }

func (r *movieResolver) Ratings() []*ratingResolver {
	out := make([]*ratingResolver, 0, len(r.m.Ratings))
	for _, rating := range r.m.Ratings {
		out = append(out, &ratingResolver{r: rating})
	}
	return out
}

type ratingResolver struct{ r model.Rating }

func (r *ratingResolver) Username() string { return r.r.Username }

func (r *ratingResolver) Score() int32 { return r.r.Score }

func (r *ratingResolver) CreatedAt() string { return r.r.CreatedAt.Format(time.RFC3339) }
