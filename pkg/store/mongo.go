package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Defaults for MongoConfig.
const (
	DefaultMongoDatabase   = "drawkit"
	DefaultMongoCollection = "scenes"
)

// sceneDoc is the stored form of a scene. The body is kept as TOML so the
// document round-trips through the same encoder as scene files.
type sceneDoc struct {
	Name      string    `bson:"_id"`
	TOML      string    `bson:"toml"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps scenes in a MongoDB collection keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it, retrying transient
// failures a few times.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, 3, 200*time.Millisecond, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: ping mongo: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return NewMongoStoreFromClient(client, cfg.Database, cfg.Collection), nil
}

// NewMongoStoreFromClient wraps an existing client. Empty database and
// collection names take the defaults.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	var docs []sceneDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*scene.Scene, error) {
	if err := errors.ValidateSceneName(name); err != nil {
		return nil, err
	}
	var doc sceneDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "scene %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get scene %s: %w", name, err)
	}
	sc, err := scene.Decode(strings.NewReader(doc.TOML))
	if err != nil {
		return nil, fmt.Errorf("stored scene %s: %w", name, err)
	}
	sc.Name = name
	return sc, nil
}

func (s *MongoStore) Put(ctx context.Context, sc *scene.Scene) error {
	if err := errors.ValidateSceneName(sc.Name); err != nil {
		return err
	}
	data, err := scene.MarshalTOML(sc)
	if err != nil {
		return err
	}
	doc := sceneDoc{Name: sc.Name, TOML: string(data), UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": sc.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put scene %s: %w", sc.Name, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete scene %s: %w", name, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
