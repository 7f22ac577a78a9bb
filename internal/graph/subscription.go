package graph

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/pubsub"
)

// NewestRating streams every rating submitted while the subscriber stays
// connected. There is no replay and no auth requirement.
func (r *Resolver) NewestRating(ctx context.Context) (<-chan *newestRatingResolver, error) {
	events := r.Hub.Subscribe(ctx)
	out := make(chan *newestRatingResolver)

	go func() {
		defer close(out)
		for ev := range events {
			select {
			case out <- &newestRatingResolver{ev: ev}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type newestRatingResolver struct{ ev pubsub.RatingEvent }

func (r *newestRatingResolver) Rating() *ratingResolver { return &ratingResolver{r: r.ev.Rating} }

func (r *newestRatingResolver) MovieTitle() string { return r.ev.MovieTitle }
