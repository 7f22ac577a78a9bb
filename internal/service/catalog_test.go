package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/apperr"
	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

var (
	owner    = auth.Identity{ID: "64f000000000000000000001", Username: "owner"}
	intruder = auth.Identity{ID: "64f000000000000000000002", Username: "intruder"}
)

func newCatalogFixture() (*CatalogService, *memMovieStore) {
	store := &memMovieStore{}
	return NewCatalogService(store, validator.MoviePolicy{}), store
}

func validInput() AddMovieInput {
	return AddMovieInput{
		Title:       "Alien",
		Duration:    117,
		ReleaseDate: "1979-05-25",
		Actors:      []string{"Sigourney Weaver", "Tom Skerritt"},
	}
}

func TestAddMovieValidatesBeforeAnythingElse(t *testing.T) {
	svc, _ := newCatalogFixture()

	in := AddMovieInput{Title: "  ", Duration: 0, ReleaseDate: "not-a-date", Actors: []string{"a", "a"}}
	_, err := svc.AddMovie(context.Background(), owner, in)
	require.True(t, apperr.Is(err, apperr.CodeInvalidInput))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Len(t, ae.Fields, 4) // every violation reported in one pass
}

func TestAddMovieCreates(t *testing.T) {
	svc, store := newCatalogFixture()

	m, err := svc.AddMovie(context.Background(), owner, validInput())
	require.NoError(t, err)
	require.Equal(t, "Alien", m.Title)
	require.Equal(t, "owner", m.Username)
	require.NotNil(t, m.Ratings)
	require.Empty(t, m.Ratings)
	require.Equal(t, int32(0), m.Grade)
	require.Len(t, store.movies, 1)
}

func TestAddMovieSameOwnerSameTitleUpdatesInPlace(t *testing.T) {
	svc, store := newCatalogFixture()
	ctx := context.Background()

	first, err := svc.AddMovie(ctx, owner, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Duration = 137 // director's cut
	second, err := svc.AddMovie(ctx, owner, in)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int32(137), second.Duration)
	require.Len(t, store.movies, 1)
}

func TestAddMovieTitleHeldByOtherOwnerConflicts(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.AddMovie(ctx, owner, validInput())
	require.NoError(t, err)

	_, err = svc.AddMovie(ctx, intruder, validInput())
	require.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestAddMovieUpdateByID(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	m, err := svc.AddMovie(ctx, owner, validInput())
	require.NoError(t, err)

	in := validInput()
	in.MovieID = m.ID.Hex()
	in.Title = "Aliens"
	in.ReleaseDate = "1986-07-18"
	updated, err := svc.AddMovie(ctx, owner, in)
	require.NoError(t, err)
	require.Equal(t, m.ID, updated.ID)
	require.Equal(t, "Aliens", updated.Title)
}

func TestAddMovieUpdateByIDErrors(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	m, err := svc.AddMovie(ctx, owner, validInput())
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		in := validInput()
		in.MovieID = "64f0000000000000000000aa"
		_, err := svc.AddMovie(ctx, owner, in)
		require.True(t, apperr.Is(err, apperr.CodeNotFound))
	})

	t.Run("retitling onto someone else's movie", func(t *testing.T) {
		other := validInput()
		other.Title = "Blade Runner"
		_, err := svc.AddMovie(ctx, intruder, other)
		require.NoError(t, err)

		in := validInput()
		in.MovieID = m.ID.Hex()
		in.Title = "Blade Runner"
		_, err = svc.AddMovie(ctx, owner, in)
		require.True(t, apperr.Is(err, apperr.CodeConflict))
	})

	t.Run("not the owner", func(t *testing.T) {
		in := validInput()
		in.MovieID = m.ID.Hex()
		_, err := svc.AddMovie(ctx, intruder, in)
		require.True(t, apperr.Is(err, apperr.CodeForbidden))
	})
}

func TestDeleteMovie(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	m, err := svc.AddMovie(ctx, owner, validInput())
	require.NoError(t, err)

	// non-owner is rejected and the movie stays retrievable
	_, err = svc.DeleteMovie(ctx, intruder, m.ID.Hex())
	require.True(t, apperr.Is(err, apperr.CodeForbidden))
	_, err = svc.GetMovie(ctx, m.ID.Hex())
	require.NoError(t, err)

	msg, err := svc.DeleteMovie(ctx, owner, m.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "movie deleted successfully", msg)

	_, err = svc.GetMovie(ctx, m.ID.Hex())
	require.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = svc.DeleteMovie(ctx, owner, m.ID.Hex())
	require.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListMoviesPagination(t *testing.T) {
	svc, store := newCatalogFixture()
	ctx := context.Background()
	seedMovies(store, "owner", "Movie", 25)

	page1, err := svc.ListMovies(ctx, owner, ListParams{})
	require.NoError(t, err)
	require.Len(t, page1.Movies, 20)
	require.Equal(t, int32(1), page1.CurrentPage)
	require.True(t, page1.HasMore)
	require.Equal(t, page1.Movies[19].ID.Hex(), page1.Cursor)

	page2, err := svc.ListMovies(ctx, owner, ListParams{PageNumber: 2})
	require.NoError(t, err)
	require.Len(t, page2.Movies, 5)
	require.Equal(t, int32(2), page2.CurrentPage)
	require.False(t, page2.HasMore)

	page3, err := svc.ListMovies(ctx, owner, ListParams{PageNumber: 3})
	require.NoError(t, err)
	require.Empty(t, page3.Movies)
	require.Empty(t, page3.Cursor)
	require.False(t, page3.HasMore)
}

func TestListMoviesOnlyMine(t *testing.T) {
	svc, store := newCatalogFixture()
	ctx := context.Background()
	seedMovies(store, "owner", "Mine", 3)
	seedMovies(store, "intruder", "Theirs", 2)

	page, err := svc.ListMovies(ctx, owner, ListParams{Filter: &ListFilter{OnlyMine: true}})
	require.NoError(t, err)
	require.Len(t, page.Movies, 3)
	for _, m := range page.Movies {
		require.Equal(t, "owner", m.Username)
	}
}

func TestListMoviesSorting(t *testing.T) {
	svc, store := newCatalogFixture()
	ctx := context.Background()
	for i, g := range []int32{40, 100, 60} {
		_, _ = store.Insert(ctx, model.Movie{Title: string(rune('a' + i)), Grade: g, Username: "owner"})
	}

	desc, err := svc.ListMovies(ctx, owner, ListParams{})
	require.NoError(t, err)
	require.Equal(t, []int32{100, 60, 40}, grades(desc.Movies))

	asc, err := svc.ListMovies(ctx, owner, ListParams{
		Filter: &ListFilter{SortField: "grade", SortOrder: "asc"},
	})
	require.NoError(t, err)
	require.Equal(t, []int32{40, 60, 100}, grades(asc.Movies))

	byTitle, err := svc.ListMovies(ctx, owner, ListParams{
		Filter: &ListFilter{SortField: "title", SortOrder: "asc"},
	})
	require.NoError(t, err)
	require.Equal(t, "a", byTitle.Movies[0].Title)
}

func grades(movies []model.Movie) []int32 {
	out := make([]int32, len(movies))
	for i, m := range movies {
		out[i] = m.Grade
	}
	return out
}
