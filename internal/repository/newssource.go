package repository

import (
	"context"

	"github.com/bilgisen/newz/internal/models"
	"github.com/bilgisen/newz/internal/storage"
)

// NewsSourceOwnerField is the stored name of the NewsSource creator field
const NewsSourceOwnerField = "newsSourceCreatedBy"

// NewsSourceRepository persists NewsSource records keyed by newsSourceId.
type NewsSourceRepository struct {
	coll storage.Collection[models.NewsSource]
}

func NewNewsSourceRepository(coll storage.Collection[models.NewsSource]) *NewsSourceRepository {
	return &NewsSourceRepository{coll: coll}
}

func (r *NewsSourceRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return r.coll.Exists(ctx, id)
}

func (r *NewsSourceRepository) Insert(ctx context.Context, source *models.NewsSource) error {
	return r.coll.Insert(ctx, *source)
}

func (r *NewsSourceRepository) FindByID(ctx context.Context, id int) (*models.NewsSource, error) {
	source, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *NewsSourceRepository) Save(ctx context.Context, source *models.NewsSource) error {
	return r.coll.Save(ctx, *source)
}

func (r *NewsSourceRepository) DeleteByID(ctx context.Context, id int) (bool, error) {
	return r.coll.Delete(ctx, id)
}

// FindAllByCreatedBy returns every source whose newsSourceCreatedBy equals userID.
func (r *NewsSourceRepository) FindAllByCreatedBy(ctx context.Context, userID string) ([]models.NewsSource, error) {
	return r.coll.FindByOwner(ctx, userID)
}
