package storage_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/newz/internal/config"
	"github.com/bilgisen/newz/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    int    `json:"id" bson:"_id"`
	Owner string `json:"owner" bson:"owner"`
	Body  string `json:"body" bson:"body"`
}

func (n note) DocumentID() int  { return n.ID }
func (n note) OwnerID() string { return n.Owner }

// testCollection runs the behaviour every driver must share.
func testCollection(t *testing.T, newColl func(t *testing.T) storage.Collection[note]) {
	ctx := context.Background()

	t.Run("insert and get", func(t *testing.T) {
		c := newColl(t)
		require.NoError(t, c.Insert(ctx, note{ID: 1, Owner: "alice", Body: "first"}))

		got, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, note{ID: 1, Owner: "alice", Body: "first"}, got)

		ok, err := c.Exists(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate insert", func(t *testing.T) {
		c := newColl(t)
		require.NoError(t, c.Insert(ctx, note{ID: 1, Owner: "alice"}))
		err := c.Insert(ctx, note{ID: 1, Owner: "bob"})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)

		got, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Owner)
	})

	t.Run("get missing", func(t *testing.T) {
		c := newColl(t)
		_, err := c.Get(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save replaces and moves owner", func(t *testing.T) {
		c := newColl(t)
		require.NoError(t, c.Insert(ctx, note{ID: 1, Owner: "alice", Body: "v1"}))
		require.NoError(t, c.Save(ctx, note{ID: 1, Owner: "bob", Body: "v2"}))

		got, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Body)

		alice, err := c.FindByOwner(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, alice)

		bob, err := c.FindByOwner(ctx, "bob")
		require.NoError(t, err)
		assert.Len(t, bob, 1)
	})

	t.Run("delete", func(t *testing.T) {
		c := newColl(t)
		require.NoError(t, c.Insert(ctx, note{ID: 7, Owner: "alice"}))

		deleted, err := c.Delete(ctx, 7)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = c.Delete(ctx, 7)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = c.Get(ctx, 7)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("find by owner is ordered and scoped", func(t *testing.T) {
		c := newColl(t)
		for _, n := range []note{
			{ID: 3, Owner: "alice"},
			{ID: 1, Owner: "alice"},
			{ID: 2, Owner: "bob"},
			{ID: 10, Owner: "alice"},
		} {
			require.NoError(t, c.Insert(ctx, n))
		}

		docs, err := c.FindByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, []int{1, 3, 10}, []int{docs[0].ID, docs[1].ID, docs[2].ID})

		none, err := c.FindByOwner(ctx, "carol")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("delete by owner", func(t *testing.T) {
		c := newColl(t)
		require.NoError(t, c.Insert(ctx, note{ID: 1, Owner: "alice"}))
		require.NoError(t, c.Insert(ctx, note{ID: 2, Owner: "alice"}))
		require.NoError(t, c.Insert(ctx, note{ID: 3, Owner: "bob"}))

		n, err := c.DeleteByOwner(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = c.DeleteByOwner(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, n)

		ok, err := c.Exists(ctx, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("concurrent inserts of one id", func(t *testing.T) {
		c := newColl(t)
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := c.Insert(ctx, note{ID: 99, Owner: fmt.Sprintf("user-%d", i)})
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}

func TestMemoryCollection(t *testing.T) {
	testCollection(t, func(t *testing.T) storage.Collection[note] {
		return storage.NewMemoryCollection[note]()
	})
}

func TestFileCollection(t *testing.T) {
	testCollection(t, func(t *testing.T) storage.Collection[note] {
		c, err := storage.NewFileCollection[note](t.TempDir(), "notes")
		require.NoError(t, err)
		return c
	})
}

func TestFileCollectionCancelledContext(t *testing.T) {
	c, err := storage.NewFileCollection[note](t.TempDir(), "notes")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Insert(ctx, note{ID: 1, Owner: "alice"}), context.Canceled)
}

func TestOpenFileBackend(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreDriver: config.DriverFile, StoragePath: t.TempDir()}

	b, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.Equal(t, config.DriverFile, b.Driver())
	assert.NoError(t, b.Ping(ctx))

	c, err := storage.NewCollection[note](ctx, b, "notes", "owner")
	require.NoError(t, err)
	require.NoError(t, c.Insert(ctx, note{ID: 1, Owner: "alice"}))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}

// uniqueName keeps runs against a shared server apart.
func uniqueName(t *testing.T) string {
	return fmt.Sprintf("test_%d", time.Now().UnixNano())
}

func TestRedisCollection(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	b, err := storage.Open(ctx, &config.Config{StoreDriver: config.DriverRedis, RedisURL: url, RedisPrefix: "newz-test:"})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer b.Close(ctx)

	testCollection(t, func(t *testing.T) storage.Collection[note] {
		c, err := storage.NewCollection[note](ctx, b, uniqueName(t), "owner")
		require.NoError(t, err)
		return c
	})
}

func TestMongoCollection(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	b, err := storage.Open(ctx, &config.Config{StoreDriver: config.DriverMongo, MongoURI: uri, MongoDatabase: "newz_test"})
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	defer b.Close(ctx)

	testCollection(t, func(t *testing.T) storage.Collection[note] {
		c, err := storage.NewCollection[note](ctx, b, uniqueName(t), "owner")
		require.NoError(t, err)
		return c
	})
}
