package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileCollection stores each document as <basePath>/<name>/<id>.json
type FileCollection[T Document] struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCollection creates the collection directory if needed
func NewFileCollection[T Document](basePath, name string) (*FileCollection[T], error) {
	dir := filepath.Join(basePath, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileCollection[T]{dir: dir}, nil
}

func (f *FileCollection[T]) path(id int) string {
	return filepath.Join(f.dir, strconv.Itoa(id)+".json")
}

func (f *FileCollection[T]) Exists(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, err := os.Stat(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat document %d: %w", id, err)
	}
	return true, nil
}

// Insert writes a new document. The file is opened with O_EXCL so two
// concurrent inserts of the same id cannot both succeed.
func (f *FileCollection[T]) Insert(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	file, err := os.OpenFile(f.path(doc.DocumentID()), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to create document file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}
	return nil
}

func (f *FileCollection[T]) Get(ctx context.Context, id int) (T, error) {
	var doc T
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.read(f.path(id))
}

func (f *FileCollection[T]) read(path string) (T, error) {
	var doc T
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal document %s: %w", path, err)
	}
	return doc, nil
}

// Save replaces the document through a temp file and rename.
func (f *FileCollection[T]) Save(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	target := f.path(doc.DocumentID())
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace document file: %w", err)
	}
	return nil
}

func (f *FileCollection[T]) Delete(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete document file: %w", err)
	}
	return true, nil
}

// FindByOwner reads every document in the directory and keeps the owner's.
func (f *FileCollection[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	docs, _, err := f.scanOwner(owner)
	if err != nil {
		return nil, err
	}
	sortByID(docs)
	return docs, nil
}

func (f *FileCollection[T]) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	_, paths, err := f.scanOwner(owner)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return n, fmt.Errorf("failed to delete document file: %w", err)
		}
		n++
	}
	return n, nil
}

func (f *FileCollection[T]) scanOwner(owner string) ([]T, []string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading the directory: %w", err)
	}

	docs := make([]T, 0)
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(f.dir, entry.Name())
		doc, err := f.read(path)
		if err != nil {
			return nil, nil, err
		}
		if doc.OwnerID() == owner {
			docs = append(docs, doc)
			paths = append(paths, path)
		}
	}
	return docs, paths, nil
}
