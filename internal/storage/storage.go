// Package storage provides the document collections behind both services.
// A Collection stores one document per integer id and keeps a secondary
// lookup by owner. Drivers: mongo, redis, file and memory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/newz/internal/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	// ErrNotFound is returned when no document has the requested id
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by Insert when the id is already taken
	ErrDuplicateKey = errors.New("duplicate document id")
)

// Document is anything that can live in a Collection.
type Document interface {
	DocumentID() int
	OwnerID() string
}

// Collection is a set of documents keyed by DocumentID.
type Collection[T Document] interface {
	Exists(ctx context.Context, id int) (bool, error)
	// Insert fails with ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, doc T) error
	Get(ctx context.Context, id int) (T, error)
	// Save inserts or replaces.
	Save(ctx context.Context, doc T) error
	Delete(ctx context.Context, id int) (bool, error)
	// FindByOwner returns the owner's documents ordered by id.
	FindByOwner(ctx context.Context, owner string) ([]T, error)
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}

const connectTimeout = 5 * time.Second

// Backend owns the client of the configured driver.
type Backend struct {
	driver string

	mongoClient *mongo.Client
	mongoDB     *mongo.Database

	redis  *redis.Client
	prefix string

	basePath string
}

// Open connects to the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{driver: cfg.StoreDriver}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.MongoURI).
			SetServerSelectionTimeout(connectTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		b.mongoClient = client
		b.mongoDB = client.Database(cfg.MongoDatabase)

	case config.DriverRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		b.redis = redis.NewClient(opt)
		b.prefix = cfg.RedisPrefix

	case config.DriverFile:
		b.basePath = cfg.StoragePath

	case config.DriverMemory:

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := b.Ping(pingCtx); err != nil {
		_ = b.Close(context.Background())
		return nil, err
	}

	return b, nil
}

// Driver returns the configured driver name.
func (b *Backend) Driver() string {
	return b.driver
}

// Ping checks that the store is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	switch {
	case b.mongoClient != nil:
		if err := b.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("failed to ping MongoDB: %w", err)
		}
	case b.redis != nil:
		if err := b.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping Redis: %w", err)
		}
	}
	return nil
}

// Close releases the driver client.
func (b *Backend) Close(ctx context.Context) error {
	switch {
	case b.mongoClient != nil:
		return b.mongoClient.Disconnect(ctx)
	case b.redis != nil:
		return b.redis.Close()
	}
	return nil
}

// NewCollection returns the collection called name on b.
// ownerField is the stored field name of the owner, used by the mongo driver
// for queries and its secondary index.
func NewCollection[T Document](ctx context.Context, b *Backend, name, ownerField string) (Collection[T], error) {
	switch b.driver {
	case config.DriverMongo:
		return newMongoCollection[T](ctx, b.mongoDB.Collection(name), ownerField)
	case config.DriverRedis:
		return newRedisCollection[T](b.redis, b.prefix+name), nil
	case config.DriverFile:
		return NewFileCollection[T](b.basePath, name)
	case config.DriverMemory:
		return NewMemoryCollection[T](), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", b.driver)
}
