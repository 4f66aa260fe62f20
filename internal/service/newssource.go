package service

import (
	"context"
	"fmt"

	"github.com/bilgisen/newz/internal/models"
	"github.com/bilgisen/newz/internal/repository"
)

// NewsSourceRepository is the persistence NewsSourceService needs.
type NewsSourceRepository interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
	Insert(ctx context.Context, source *models.NewsSource) error
	FindByID(ctx context.Context, id int) (*models.NewsSource, error)
	Save(ctx context.Context, source *models.NewsSource) error
	DeleteByID(ctx context.Context, id int) (bool, error)
	FindAllByCreatedBy(ctx context.Context, userID string) ([]models.NewsSource, error)
}

type NewsSourceService struct {
	repo NewsSourceRepository
}

func NewNewsSourceService(repo NewsSourceRepository) *NewsSourceService {
	return &NewsSourceService{repo: repo}
}

// AddNewsSource returns false without writing when the id is taken.
func (s *NewsSourceService) AddNewsSource(ctx context.Context, source *models.NewsSource) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, source.NewsSourceID)
	if err != nil {
		return false, fmt.Errorf("failed to check news source %d: %w", source.NewsSourceID, err)
	}
	if exists {
		return false, nil
	}

	if err := s.repo.Insert(ctx, source); err != nil {
		if repository.IsDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert news source %d: %w", source.NewsSourceID, err)
	}
	return true, nil
}

func (s *NewsSourceService) DeleteNewsSource(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete news source %d: %w", id, err)
	}
	return deleted, nil
}

// UpdateNewsSource overwrites the fields present in upd.
func (s *NewsSourceService) UpdateNewsSource(ctx context.Context, upd models.NewsSourceUpdate, id int) (*models.NewsSource, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNewsSourceNotFound
		}
		return nil, fmt.Errorf("failed to get news source %d: %w", id, err)
	}

	upd.Apply(source)
	if err := s.repo.Save(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to save news source %d: %w", id, err)
	}
	return source, nil
}

// GetNewsSourceByID looks for id among the sources created by userID.
func (s *NewsSourceService) GetNewsSourceByID(ctx context.Context, userID string, id int) (*models.NewsSource, error) {
	sources, err := s.repo.FindAllByCreatedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news sources for %s: %w", userID, err)
	}
	for i := range sources {
		if sources[i].NewsSourceID == id {
			return &sources[i], nil
		}
	}
	return nil, ErrNewsSourceNotFound
}

func (s *NewsSourceService) GetAllNewsSourceByUserID(ctx context.Context, userID string) ([]models.NewsSource, error) {
	sources, err := s.repo.FindAllByCreatedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news sources for %s: %w", userID, err)
	}
	if sources == nil {
		sources = []models.NewsSource{}
	}
	return sources, nil
}
