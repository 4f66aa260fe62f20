package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryCollection keeps documents in a map. It is used by tests and the
// memory driver; its contents do not outlive the process.
type MemoryCollection[T Document] struct {
	mu   sync.RWMutex
	docs map[int]T
}

// NewMemoryCollection returns an empty collection
func NewMemoryCollection[T Document]() *MemoryCollection[T] {
	return &MemoryCollection[T]{docs: make(map[int]T)}
}

func (m *MemoryCollection[T]) Exists(ctx context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[id]
	return ok, nil
}

func (m *MemoryCollection[T]) Insert(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.DocumentID()]; ok {
		return ErrDuplicateKey
	}
	m.docs[doc.DocumentID()] = doc
	return nil
}

func (m *MemoryCollection[T]) Get(ctx context.Context, id int) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return doc, nil
}

func (m *MemoryCollection[T]) Save(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.DocumentID()] = doc
	return nil
}

func (m *MemoryCollection[T]) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return false, nil
	}
	delete(m.docs, id)
	return true, nil
}

func (m *MemoryCollection[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]T, 0)
	for _, doc := range m.docs {
		if doc.OwnerID() == owner {
			docs = append(docs, doc)
		}
	}
	sortByID(docs)
	return docs, nil
}

func (m *MemoryCollection[T]) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, doc := range m.docs {
		if doc.OwnerID() == owner {
			delete(m.docs, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored documents
func (m *MemoryCollection[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func sortByID[T Document](docs []T) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DocumentID() < docs[j].DocumentID()
	})
}
