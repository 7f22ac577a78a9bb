// Package queue defines message payloads exchanged over the message broker
// along with the publisher and background consumer for the rating feed.
package queue

// RatingSubmittedEvent is published when a user submits a new rating. It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type RatingSubmittedEvent struct {
	MovieID     string `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
	Username    string `json:"username"`
	Score       int32  `json:"score"`
	RatingCount int32  `json:"rating_count"`
	Grade       int32  `json:"grade"`
	SubmittedAt string `json:"submitted_at"`
}
