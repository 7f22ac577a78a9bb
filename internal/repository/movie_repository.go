package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieQuery defines filter, sort and pagination for listing movies. Sort is
// expressed in document field names; the service layer owns the mapping from
// API sort fields and the page math.
type MovieQuery struct {
	Username  string // restrict to movies owned by this username when non-empty
	SortField string // document field to sort by, e.g. "grade"
	Ascending bool
	Skip      int64
	Limit     int64
}

// MovieRepo persists movie aggregates in the `movies` collection. A movie is
// always read and written as a whole document; concurrent rating writes to
// the same movie are last-write-wins.
type MovieRepo struct{ coll *mongo.Collection }

func NewMovieRepo(db *mongo.Database) *MovieRepo {
	return &MovieRepo{coll: db.Collection("movies")}
}

// EnsureIndexes creates the indexes backing title lookups and owner listings.
// Title is intentionally not unique at the store level: uniqueness among
// active movies is an application rule with per-owner update semantics.
func (r *MovieRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetName("by_title")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("by_owner")},
	})
	return err
}

// Insert stores a new movie and returns it with its assigned id.
func (r *MovieRepo) Insert(ctx context.Context, m model.Movie) (model.Movie, error) {
	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return model.Movie{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

// GetByID fetches a movie by its hex object id.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Movie{}, ErrNotFound
	}
	var m model.Movie
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

// FindByTitle returns all movies with the exact title.
func (r *MovieRepo) FindByTitle(ctx context.Context, title string) ([]model.Movie, error) {
	cur, err := r.coll.Find(ctx, bson.M{"title": title})
	if err != nil {
		return nil, err
	}
	var out []model.Movie
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace overwrites the whole movie document.
func (r *MovieRepo) Replace(ctx context.Context, m model.Movie) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a movie by its hex object id.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of movies plus the total number of matches. The sort
// always carries _id as a secondary key so equal primary values page
// deterministically.
func (r *MovieRepo) List(ctx context.Context, q MovieQuery) ([]model.Movie, int64, error) {
	filter := bson.M{}
	if q.Username != "" {
		filter["username"] = q.Username
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	dir := -1
	if q.Ascending {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var out []model.Movie
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
