package service

// In-memory store fakes shared by the service tests. They mirror the
// repository contracts, including sentinel errors and the stable secondary
// ordering of List.

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

type memUserStore struct {
	users []model.User
}

func (s *memUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	for _, e := range s.users {
		if e.Username == u.Username {
			return model.User{}, repository.ErrUsernameExists
		}
		if e.Email == u.Email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	u.ID = primitive.NewObjectID()
	s.users = append(s.users, u)
	return u, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memUserStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (s *memUserStore) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memMovieStore struct {
	movies []model.Movie
}

func (s *memMovieStore) Insert(_ context.Context, m model.Movie) (model.Movie, error) {
	m.ID = primitive.NewObjectID()
	s.movies = append(s.movies, m)
	return m, nil
}

func (s *memMovieStore) GetByID(_ context.Context, id string) (model.Movie, error) {
	for _, m := range s.movies {
		if m.ID.Hex() == id {
			return m, nil
		}
	}
	return model.Movie{}, repository.ErrNotFound
}

func (s *memMovieStore) FindByTitle(_ context.Context, title string) ([]model.Movie, error) {
	var out []model.Movie
	for _, m := range s.movies {
		if m.Title == title {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMovieStore) Replace(_ context.Context, m model.Movie) error {
	for i, e := range s.movies {
		if e.ID == m.ID {
			s.movies[i] = m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memMovieStore) Delete(_ context.Context, id string) error {
	for i, m := range s.movies {
		if m.ID.Hex() == id {
			s.movies = append(s.movies[:i], s.movies[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memMovieStore) List(_ context.Context, q repository.MovieQuery) ([]model.Movie, int64, error) {
	var matched []model.Movie
	for _, m := range s.movies {
		if q.Username == "" || m.Username == q.Username {
			matched = append(matched, m)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !q.Ascending {
			i, j = j, i
		}
		switch q.SortField {
		case "title":
			return matched[i].Title < matched[j].Title
		case "duration":
			return matched[i].Duration < matched[j].Duration
		case "ratingCount":
			return matched[i].RatingCount < matched[j].RatingCount
		case "releaseDate":
			return matched[i].ReleaseDate < matched[j].ReleaseDate
		case "createdAt":
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default: // grade
			return matched[i].Grade < matched[j].Grade
		}
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// seedMovies inserts n movies owned by owner, titled "<prefix> 1..n".
func seedMovies(s *memMovieStore, owner string, prefix string, n int) {
	for i := 1; i <= n; i++ {
		_, _ = s.Insert(context.Background(), model.Movie{
			Title:    prefix + " " + strings.Repeat("I", i),
			Duration: 90,
			Username: owner,
			Ratings:  []model.Rating{},
		})
	}
}
