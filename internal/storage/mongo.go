package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection maps DocumentID to _id; ownerField is indexed.
type mongoCollection[T Document] struct {
	coll       *mongo.Collection
	ownerField string
}

func newMongoCollection[T Document](ctx context.Context, coll *mongo.Collection, ownerField string) (*mongoCollection[T], error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: ownerField, Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s index on %s: %w", ownerField, coll.Name(), err)
	}
	return &mongoCollection[T]{coll: coll, ownerField: ownerField}, nil
}

func byID(id int) bson.M {
	return bson.M{"_id": id}
}

func (m *mongoCollection[T]) Exists(ctx context.Context, id int) (bool, error) {
	n, err := m.coll.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo count error: %w", err)
	}
	return n > 0, nil
}

func (m *mongoCollection[T]) Insert(ctx context.Context, doc T) error {
	_, err := m.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("mongo insert error: %w", err)
	}
	return nil
}

func (m *mongoCollection[T]) Get(ctx context.Context, id int) (T, error) {
	var doc T
	err := m.coll.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("mongo find error: %w", err)
	}
	return doc, nil
}

func (m *mongoCollection[T]) Save(ctx context.Context, doc T) error {
	_, err := m.coll.ReplaceOne(ctx, byID(doc.DocumentID()), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace error: %w", err)
	}
	return nil
}

func (m *mongoCollection[T]) Delete(ctx context.Context, id int) (bool, error) {
	res, err := m.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("mongo delete error: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (m *mongoCollection[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	cursor, err := m.coll.Find(ctx,
		bson.M{m.ownerField: owner},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find error: %w", err)
	}

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo cursor error: %w", err)
	}
	return docs, nil
}

func (m *mongoCollection[T]) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	res, err := m.coll.DeleteMany(ctx, bson.M{m.ownerField: owner})
	if err != nil {
		return 0, fmt.Errorf("mongo delete error: %w", err)
	}
	return res.DeletedCount, nil
}
