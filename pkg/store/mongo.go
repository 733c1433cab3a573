package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindlayout/pkg/errors"
)

// DefaultCollection is the collection holding map documents.
const DefaultCollection = "maps"

// MongoStore keeps one document per map in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, selects database db and ensures the
// collection's indexes exist.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(DefaultCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create index")
	}
	return nil
}

// Create inserts a new map document.
func (s *MongoStore) Create(ctx context.Context, m *Map) error {
	if err := validate(m); err != nil {
		return err
	}
	stamp(m, now())
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "insert map")
	}
	return nil
}

// Get loads a map document.
func (s *MongoStore) Get(ctx context.Context, id string) (*Map, error) {
	var m Map
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find map %s", id)
	}
	return &m, nil
}

// List returns map summaries without loading their trees.
func (s *MongoStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	opts = opts.normalize()
	find := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)).
		SetProjection(bson.M{"tree": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode maps")
	}
	return out, nil
}

// Update replaces title, strategy and tree of an existing document.
func (s *MongoStore) Update(ctx context.Context, m *Map) error {
	if err := validate(m); err != nil {
		return err
	}
	m.UpdatedAt = now()

	var old Map
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": m.ID},
		bson.M{"$set": bson.M{
			"title":      m.Title,
			"strategy":   m.Strategy,
			"tree":       m.Tree,
			"updated_at": m.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetProjection(bson.M{"created_at": 1}),
	).Decode(&old)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return notFound(m.ID)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "update map %s", m.ID)
	}
	m.CreatedAt = old.CreatedAt
	return nil
}

// Delete removes a map document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete map %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
