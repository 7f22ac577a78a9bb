package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/iliyamo/movie-catalog/internal/apperr"
	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/pubsub"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// maxScore is the highest submittable score; a movie's grade is the rating
// sum as a percentage of ratingCount*maxScore.
const maxScore = 5

// RatingService is the single entry point for rating mutation. All changes to
// a movie's embedded rating list go through ApplyRating so ratingCount and
// grade stay consistent with the list.
type RatingService struct {
	movies MovieStore
	hub    *pubsub.Hub
	events RatingEventPublisher // optional
	now    func() time.Time
}

func NewRatingService(movies MovieStore, hub *pubsub.Hub, events RatingEventPublisher) *RatingService {
	return &RatingService{movies: movies, hub: hub, events: events, now: func() time.Time { return time.Now().UTC() }}
}

// ApplyRating upserts or retracts the actor's rating on a movie and returns
// the updated movie. Score 0 retracts; 1..5 replaces any prior rating with a
// fresh one, so createdAt always reflects the latest submission. A
// non-retraction emits one "new rating" event.
func (s *RatingService) ApplyRating(ctx context.Context, actor auth.Identity, movieID string, score int32) (model.Movie, error) {
	if score < 0 || score > maxScore {
		return model.Movie{}, apperr.InvalidInput("invalid rating value",
			map[string]string{"score": "score must be between 0 and 5"})
	}

	m, err := s.movies.GetByID(ctx, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, apperr.NotFound("movie not found")
	}
	if err != nil {
		return model.Movie{}, apperr.Internal("lookup failed")
	}

	// Replace semantics: any prior rating by this user is removed first.
	kept := m.Ratings[:0:0]
	for _, r := range m.Ratings {
		if r.Username != actor.Username {
			kept = append(kept, r)
		}
	}
	m.Ratings = kept

	retraction := score == 0
	var added model.Rating
	if !retraction {
		added = model.Rating{Username: actor.Username, Score: score, CreatedAt: s.now()}
		m.Ratings = append(m.Ratings, added)
	}

	m.RatingCount = int32(len(m.Ratings))
	m.Grade = Grade(m.Ratings)

	if err := s.movies.Replace(ctx, m); err != nil {
		return model.Movie{}, apperr.Internal("save rating failed")
	}

	if !retraction && len(m.Ratings) > 0 {
		s.hub.Publish(pubsub.RatingEvent{Rating: added, MovieTitle: m.Title})
		s.publishToBroker(ctx, m, added)
	}
	return m, nil
}

// Grade computes the 0..100 grade: the rating sum as a percentage of the
// maximum achievable total, rounded half-up. Zero ratings grade to 0.
func Grade(ratings []model.Rating) int32 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int32
	for _, r := range ratings {
		sum += r.Score
	}
	return int32(math.Round(float64(sum) * 100 / float64(len(ratings)*maxScore)))
}

// publishToBroker forwards the rating to RabbitMQ. Best-effort: failures are
// logged by the publisher and ignored here.
func (s *RatingService) publishToBroker(ctx context.Context, m model.Movie, r model.Rating) {
	if s.events == nil {
		return
	}
	ev := queue.RatingSubmittedEvent{
		MovieID:     m.ID.Hex(),
		MovieTitle:  m.Title,
		Username:    r.Username,
		Score:       r.Score,
		RatingCount: m.RatingCount,
		Grade:       m.Grade,
		SubmittedAt: r.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.events.PublishRatingSubmitted(pubCtx, ev); err != nil {
			logger.Debug("rating event not delivered to broker", "movie", ev.MovieID)
		}
	}()
}
