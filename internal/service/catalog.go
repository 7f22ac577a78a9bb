package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/movie-catalog/internal/apperr"
	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

const (
	defaultPageSize  = 20
	defaultSortField = "grade"
)

// sortFields maps API sort field names to document fields. Unknown names fall
// back to the default so a typo degrades instead of erroring.
var sortFields = map[string]string{
	"title":       "title",
	"grade":       "grade",
	"duration":    "duration",
	"ratingCount": "ratingCount",
	"releaseDate": "releaseDate",
	"createdAt":   "createdAt",
}

// AddMovieInput is the catalog submission record. A non-empty MovieID selects
// the update path; an empty one means creation (or an idempotent re-submit of
// the caller's own title).
type AddMovieInput struct {
	MovieID     string
	Title       string
	Duration    int32
	ReleaseDate string
	Actors      []string
}

// ListFilter narrows and orders a movie listing.
type ListFilter struct {
	OnlyMine  bool
	SortField string
	SortOrder string // "asc" | "desc"
}

// ListParams is the page-based listing request. Pages are 1-indexed.
type ListParams struct {
	PageNumber int32
	PageSize   int32
	Filter     *ListFilter
}

// MoviesPage is one page of a listing plus its paging metadata.
type MoviesPage struct {
	Movies      []model.Movie
	Cursor      string // id of the last item on this page, "" when the page is empty
	CurrentPage int32
	HasMore     bool
}

// CatalogService implements CRUD-with-ownership over movies.
type CatalogService struct {
	movies MovieStore
	policy validator.MoviePolicy
	now    func() time.Time
}

func NewCatalogService(movies MovieStore, policy validator.MoviePolicy) *CatalogService {
	return &CatalogService{movies: movies, policy: policy, now: func() time.Time { return time.Now().UTC() }}
}

// AddMovie creates or updates a movie. Validation runs before any ownership
// or duplication check so malformed requests are rejected first.
func (s *CatalogService) AddMovie(ctx context.Context, actor auth.Identity, in AddMovieInput) (model.Movie, error) {
	errs, ok := validator.ValidateMovie(validator.MovieInput{
		Title:       in.Title,
		Actors:      in.Actors,
		ReleaseDate: in.ReleaseDate,
		Duration:    in.Duration,
	}, s.policy)
	if !ok {
		return model.Movie{}, apperr.InvalidInput("add movie input errors", errs)
	}

	title := strings.TrimSpace(in.Title)
	if in.MovieID == "" {
		return s.createOrResubmit(ctx, actor, title, in)
	}
	return s.update(ctx, actor, title, in)
}

// createOrResubmit handles submissions without an id. A title held by someone
// else is a conflict; the caller's own title is updated in place so repeated
// submissions stay idempotent.
func (s *CatalogService) createOrResubmit(ctx context.Context, actor auth.Identity, title string, in AddMovieInput) (model.Movie, error) {
	existing, err := s.movies.FindByTitle(ctx, title)
	if err != nil {
		return model.Movie{}, apperr.Internal("lookup failed")
	}
	if len(existing) > 0 {
		m := existing[0]
		if m.Username != actor.Username {
			return model.Movie{}, apperr.Conflict("movie already exists")
		}
		applyFields(&m, title, in)
		if err := s.movies.Replace(ctx, m); err != nil {
			return model.Movie{}, apperr.Internal("update movie failed")
		}
		return m, nil
	}

	ownerID, _ := primitive.ObjectIDFromHex(actor.ID)
	m := model.Movie{
		Title:       title,
		Duration:    in.Duration,
		ReleaseDate: in.ReleaseDate,
		Actors:      in.Actors,
		CreatedAt:   s.now(),
		Ratings:     []model.Rating{},
		RatingCount: 0,
		Grade:       0,
		Username:    actor.Username,
		UserID:      ownerID,
	}
	m, err = s.movies.Insert(ctx, m)
	if err != nil {
		return model.Movie{}, apperr.Internal("create movie failed")
	}
	return m, nil
}

// update handles submissions carrying an id: the referenced movie must exist,
// must be the unique holder of the submitted title, and must belong to the
// actor.
func (s *CatalogService) update(ctx context.Context, actor auth.Identity, title string, in AddMovieInput) (model.Movie, error) {
	m, err := s.movies.GetByID(ctx, in.MovieID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, apperr.NotFound("movie not found")
	}
	if err != nil {
		return model.Movie{}, apperr.Internal("lookup failed")
	}

	titled, err := s.movies.FindByTitle(ctx, title)
	if err != nil {
		return model.Movie{}, apperr.Internal("lookup failed")
	}
	for _, other := range titled {
		if other.ID != m.ID {
			return model.Movie{}, apperr.Conflict("cannot use already existing movie title")
		}
	}

	if m.Username != actor.Username {
		return model.Movie{}, apperr.Forbidden("not allowed")
	}

	applyFields(&m, title, in)
	if err := s.movies.Replace(ctx, m); err != nil {
		return model.Movie{}, apperr.Internal("update movie failed")
	}
	return m, nil
}

// DeleteMovie removes a movie owned by the actor and returns a confirmation.
func (s *CatalogService) DeleteMovie(ctx context.Context, actor auth.Identity, movieID string) (string, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperr.NotFound("movie not found")
	}
	if err != nil {
		return "", apperr.Internal("lookup failed")
	}
	if m.Username != actor.Username {
		return "", apperr.Forbidden("not allowed")
	}
	if err := s.movies.Delete(ctx, movieID); err != nil {
		return "", apperr.Internal("delete movie failed")
	}
	return "movie deleted successfully", nil
}

// GetMovie fetches a single movie. Any authenticated user may read any movie.
func (s *CatalogService) GetMovie(ctx context.Context, movieID string) (model.Movie, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, apperr.NotFound("movie not found")
	}
	if err != nil {
		return model.Movie{}, apperr.Internal("lookup failed")
	}
	return m, nil
}

// ListMovies returns one 1-indexed page of movies, sorted and filtered per
// params. Defaults: page 1, size 20, grade descending.
func (s *CatalogService) ListMovies(ctx context.Context, actor auth.Identity, params ListParams) (MoviesPage, error) {
	page := params.PageNumber
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = defaultPageSize
	}

	q := repository.MovieQuery{
		SortField: sortFields[defaultSortField],
		Ascending: false,
		Skip:      int64(page-1) * int64(size),
		Limit:     int64(size),
	}
	if f := params.Filter; f != nil {
		if f.OnlyMine {
			q.Username = actor.Username
		}
		if field, ok := sortFields[f.SortField]; ok {
			q.SortField = field
		}
		q.Ascending = strings.EqualFold(f.SortOrder, "asc")
	}

	movies, total, err := s.movies.List(ctx, q)
	if err != nil {
		return MoviesPage{}, apperr.Internal("list movies failed")
	}

	cursor := ""
	if len(movies) > 0 {
		cursor = movies[len(movies)-1].ID.Hex()
	}
	return MoviesPage{
		Movies:      movies,
		Cursor:      cursor,
		CurrentPage: page,
		HasMore:     int64(page)*int64(size) < total,
	}, nil
}

func applyFields(m *model.Movie, title string, in AddMovieInput) {
	m.Title = title
	m.Duration = in.Duration
	m.ReleaseDate = in.ReleaseDate
	m.Actors = in.Actors
}
