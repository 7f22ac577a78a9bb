package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/service"
)

type filterInput struct {
	OnlyMine  bool
	SortField string
	SortOrder string
}

type paginationInput struct {
	PageNumber *int32
	PageSize   *int32
	Filter     *filterInput
}

type addMovieInput struct {
	MovieID     *graphql.ID
	Title       string
	Duration    int32
	ReleaseDate string
	Actors      []string
}

type addRatingInput struct {
	MovieID graphql.ID
	Score   int32
}

func (r *Resolver) GetMovies(ctx context.Context, args struct{ PaginationParams *paginationInput }) (*moviesConnectionResolver, error) {
	actor, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}

	params := service.ListParams{}
	if p := args.PaginationParams; p != nil {
		if p.PageNumber != nil {
			params.PageNumber = *p.PageNumber
		}
		if p.PageSize != nil {
			params.PageSize = *p.PageSize
		}
		if p.Filter != nil {
			params.Filter = &service.ListFilter{
				OnlyMine:  p.Filter.OnlyMine,
				SortField: p.Filter.SortField,
				SortOrder: p.Filter.SortOrder,
			}
		}
	}

	page, err := r.Catalog.ListMovies(ctx, actor, params)
	if err != nil {
		return nil, err
	}
	return &moviesConnectionResolver{page: page}, nil
}

func (r *Resolver) GetMovie(ctx context.Context, args struct{ MovieID graphql.ID }) (*movieResolver, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	m, err := r.Catalog.GetMovie(ctx, string(args.MovieID))
	if err != nil {
		return nil, err
	}
	return &movieResolver{m: m}, nil
}

func (r *Resolver) AddMovie(ctx context.Context, args struct{ AddMovieInput addMovieInput }) (*movieResolver, error) {
	actor, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}

	in := service.AddMovieInput{
		Title:       args.AddMovieInput.Title,
		Duration:    args.AddMovieInput.Duration,
		ReleaseDate: args.AddMovieInput.ReleaseDate,
		Actors:      args.AddMovieInput.Actors,
	}
	if args.AddMovieInput.MovieID != nil {
		in.MovieID = string(*args.AddMovieInput.MovieID)
	}

	m, err := r.Catalog.AddMovie(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	return &movieResolver{m: m}, nil
}

func (r *Resolver) DeleteMovie(ctx context.Context, args struct{ MovieID graphql.ID }) (string, error) {
	actor, err := auth.Require(ctx)
	if err != nil {
		return "", err
	}
	return r.Catalog.DeleteMovie(ctx, actor, string(args.MovieID))
}

func (r *Resolver) AddRating(ctx context.Context, args struct{ AddRatingInput addRatingInput }) (*movieResolver, error) {
	actor, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	m, err := r.Ratings.ApplyRating(ctx, actor, string(args.AddRatingInput.MovieID), args.AddRatingInput.Score)
	if err != nil {
		return nil, err
	}
	return &movieResolver{m: m}, nil
}

type moviesConnectionResolver struct{ page service.MoviesPage }

func (r *moviesConnectionResolver) Cursor() string { return r.page.Cursor }

func (r *moviesConnectionResolver) CurrentPage() int32 { return r.page.CurrentPage }

func (r *moviesConnectionResolver) HasMore() bool { return r.page.HasMore }

func (r *moviesConnectionResolver) Movies() []*movieResolver {
	out := make([]*movieResolver, 0, len(r.page.Movies))
	for _, m := range r.page.Movies {
		out = append(out, &movieResolver{m: m})
	}
	return out
}
