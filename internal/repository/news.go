// Package repository wraps the document collections with the lookups each
// service needs.
package repository

import (
	"context"
	"errors"

	"github.com/bilgisen/newz/internal/models"
	"github.com/bilgisen/newz/internal/storage"
)

// Errors surfaced by the repositories
var (
	ErrNotFound  = storage.ErrNotFound
	ErrDuplicate = storage.ErrDuplicateKey
)

// NewsOwnerField is the stored name of the News owner field
const NewsOwnerField = "userId"

// NewsRepository persists News records keyed by newsId.
type NewsRepository struct {
	coll storage.Collection[models.News]
}

// NewNewsRepository creates a repository over coll
func NewNewsRepository(coll storage.Collection[models.News]) *NewsRepository {
	return &NewsRepository{coll: coll}
}

func (r *NewsRepository) ExistsByID(ctx context.Context, newsID int) (bool, error) {
	return r.coll.Exists(ctx, newsID)
}

// Insert fails with ErrDuplicate when newsId is taken.
func (r *NewsRepository) Insert(ctx context.Context, news *models.News) error {
	return r.coll.Insert(ctx, *news)
}

// FindByID returns ErrNotFound if no record has newsID.
func (r *NewsRepository) FindByID(ctx context.Context, newsID int) (*models.News, error) {
	news, err := r.coll.Get(ctx, newsID)
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *NewsRepository) Save(ctx context.Context, news *models.News) error {
	return r.coll.Save(ctx, *news)
}

func (r *NewsRepository) DeleteByID(ctx context.Context, newsID int) (bool, error) {
	return r.coll.Delete(ctx, newsID)
}

// FindAllByUserID returns the user's records ordered by newsId.
func (r *NewsRepository) FindAllByUserID(ctx context.Context, userID string) ([]models.News, error) {
	return r.coll.FindByOwner(ctx, userID)
}

func (r *NewsRepository) DeleteAllByUserID(ctx context.Context, userID string) (int64, error) {
	return r.coll.DeleteByOwner(ctx, userID)
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is an id conflict on insert
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
