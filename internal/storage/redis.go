package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bilgisen/newz/internal/utils"
	"github.com/redis/go-redis/v9"
)

// redisCollection stores documents as JSON strings at <prefix>:<id> and
// keeps a set of ids per owner at <prefix>:owner:<sha256(owner)>.
type redisCollection[T Document] struct {
	client *redis.Client
	prefix string
}

func newRedisCollection[T Document](client *redis.Client, prefix string) *redisCollection[T] {
	return &redisCollection[T]{client: client, prefix: prefix}
}

func (r *redisCollection[T]) key(id int) string {
	return r.prefix + ":" + strconv.Itoa(id)
}

func (r *redisCollection[T]) ownerKey(owner string) string {
	return r.prefix + ":owner:" + utils.Hash(owner)
}

func (r *redisCollection[T]) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists error: %w", err)
	}
	return exists > 0, nil
}

func (r *redisCollection[T]) Insert(ctx context.Context, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(doc.DocumentID()), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx error: %w", err)
	}
	if !created {
		return ErrDuplicateKey
	}

	if err := r.client.SAdd(ctx, r.ownerKey(doc.OwnerID()), doc.DocumentID()).Err(); err != nil {
		return fmt.Errorf("redis sadd error: %w", err)
	}
	return nil
}

func (r *redisCollection[T]) Get(ctx context.Context, id int) (T, error) {
	var doc T
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("redis get error: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal document %d: %w", id, err)
	}
	return doc, nil
}

// Save replaces the document and moves it to the new owner's index when
// the owner changed.
func (r *redisCollection[T]) Save(ctx context.Context, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	previous, err := r.Get(ctx, doc.DocumentID())
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	moved := err == nil && previous.OwnerID() != doc.OwnerID()

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(doc.DocumentID()), data, 0)
		if moved {
			pipe.SRem(ctx, r.ownerKey(previous.OwnerID()), doc.DocumentID())
		}
		pipe.SAdd(ctx, r.ownerKey(doc.OwnerID()), doc.DocumentID())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save error: %w", err)
	}
	return nil
}

func (r *redisCollection[T]) Delete(ctx context.Context, id int) (bool, error) {
	doc, err := r.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var deleted *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.key(id))
		pipe.SRem(ctx, r.ownerKey(doc.OwnerID()), id)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis delete error: %w", err)
	}
	return deleted.Val() > 0, nil
}

// FindByOwner loads the owner's index and fetches the documents in one MGET.
// Ids whose document has disappeared are skipped.
func (r *redisCollection[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	docs, _, err := r.findByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	sortByID(docs)
	return docs, nil
}

func (r *redisCollection[T]) findByOwner(ctx context.Context, owner string) ([]T, []string, error) {
	ids, err := r.client.SMembers(ctx, r.ownerKey(owner)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("redis smembers error: %w", err)
	}

	docs := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return docs, nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + ":" + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("redis mget error: %w", err)
	}

	var found []string
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal document %s: %w", keys[i], err)
		}
		if doc.OwnerID() != owner {
			continue
		}
		docs = append(docs, doc)
		found = append(found, keys[i])
	}
	return docs, found, nil
}

func (r *redisCollection[T]) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	_, keys, err := r.findByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}

	keys = append(keys, r.ownerKey(owner))
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("error deleting keys: %w", err)
	}
	return int64(len(keys) - 1), nil
}
