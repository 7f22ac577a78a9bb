package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is the aggregate root stored as a single document in the `movies`
// collection. Ratings are embedded; they have no identity of their own beyond
// (movie, username) and never outlive the movie. RatingCount and Grade are
// derived from Ratings and must only be recomputed through the rating
// service, never written directly.
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Duration    int32              `bson:"duration"` // minutes, positive
	ReleaseDate string             `bson:"releaseDate"`
	Actors      []string           `bson:"actors"`
	CreatedAt   time.Time          `bson:"createdAt"`
	Ratings     []Rating           `bson:"ratings"`
	RatingCount int32              `bson:"ratingCount"`
	Grade       int32              `bson:"grade"` // 0..100, percent of maximum possible score
	Username    string             `bson:"username"`
	UserID      primitive.ObjectID `bson:"user"`
}

// Rating is a single user's score for a movie. At most one rating per
// username exists on a movie at any time.
type Rating struct {
	Username  string    `bson:"username"`
	Score     int32     `bson:"score"` // 1..5 once stored; 0 retracts and is never stored
	CreatedAt time.Time `bson:"createdAt"`
}

// RatingBy returns the rating submitted by username, if any.
func (m *Movie) RatingBy(username string) (Rating, bool) {
	for _, r := range m.Ratings {
		if r.Username == username {
			return r, true
		}
	}
	return Rating{}, false
}
