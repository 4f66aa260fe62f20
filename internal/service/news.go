// Package service holds the business rules of both services: existence
// checks before insert and ownership-scoped lookups before update and delete.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/newz/internal/logger"
	"github.com/bilgisen/newz/internal/models"
	"github.com/bilgisen/newz/internal/repository"
	"github.com/rs/zerolog"
)

// NewsRepository is the persistence NewsService needs.
type NewsRepository interface {
	ExistsByID(ctx context.Context, newsID int) (bool, error)
	Insert(ctx context.Context, news *models.News) error
	FindByID(ctx context.Context, newsID int) (*models.News, error)
	Save(ctx context.Context, news *models.News) error
	DeleteByID(ctx context.Context, newsID int) (bool, error)
	FindAllByUserID(ctx context.Context, userID string) ([]models.News, error)
	DeleteAllByUserID(ctx context.Context, userID string) (int64, error)
}

// SourceResolver looks up the canonical copy of a news source.
type SourceResolver interface {
	GetNewsSource(ctx context.Context, userID string, newsSourceID int) (*models.NewsSource, error)
}

// Archiver keeps a copy of a user's news before they are deleted.
type Archiver interface {
	ArchiveNews(ctx context.Context, userID string, news []models.News) (string, error)
}

// NewsService implements the News operations
type NewsService struct {
	repo     NewsRepository
	sources  SourceResolver
	archiver Archiver
	now      func() time.Time
	log      *zerolog.Logger
}

// NewsOption configures a NewsService
type NewsOption func(*NewsService)

// WithSourceResolver enables embedding the canonical news source on AddNews.
func WithSourceResolver(r SourceResolver) NewsOption {
	return func(s *NewsService) { s.sources = r }
}

// WithArchiver archives a user's news before DeleteAllNews removes them.
func WithArchiver(a Archiver) NewsOption {
	return func(s *NewsService) { s.archiver = a }
}

// WithClock replaces time.Now for publishedAt.
func WithClock(now func() time.Time) NewsOption {
	return func(s *NewsService) { s.now = now }
}

func NewNewsService(repo NewsRepository, opts ...NewsOption) *NewsService {
	s := &NewsService{
		repo: repo,
		now:  time.Now,
		log:  logger.Component("news-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNews stores news unless its newsId is taken, in which case it returns false.
// publishedAt is always set here.
func (s *NewsService) AddNews(ctx context.Context, news *models.News) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, news.NewsID)
	if err != nil {
		return false, fmt.Errorf("failed to check news %d: %w", news.NewsID, err)
	}
	if exists {
		return false, nil
	}

	news.PublishedAt = s.now().UTC().Truncate(time.Millisecond)
	s.embedSource(ctx, news)

	if err := s.repo.Insert(ctx, news); err != nil {
		if repository.IsDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert news %d: %w", news.NewsID, err)
	}
	return true, nil
}

func (s *NewsService) embedSource(ctx context.Context, news *models.News) {
	if s.sources == nil || news.NewsSource.NewsSourceID == 0 {
		return
	}

	source, err := s.sources.GetNewsSource(ctx, news.UserID, news.NewsSource.NewsSourceID)
	if err != nil {
		s.log.Warn().
			Err(err).
			Int("newsId", news.NewsID).
			Int("newsSourceId", news.NewsSource.NewsSourceID).
			Msg("Could not resolve news source, keeping embedded copy")
		return
	}
	news.NewsSource = *source
}

// DeleteNews removes the record if it exists and belongs to userID.
func (s *NewsService) DeleteNews(ctx context.Context, userID string, newsID int) (bool, error) {
	if _, err := s.owned(ctx, userID, newsID); err != nil {
		if errors.Is(err, ErrNewsNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.repo.DeleteByID(ctx, newsID)
	if err != nil {
		return false, fmt.Errorf("failed to delete news %d: %w", newsID, err)
	}
	return deleted, nil
}

// DeleteAllNews removes every record of userID, archiving them first when an
// archiver is set. A failed archive leaves the records in place.
func (s *NewsService) DeleteAllNews(ctx context.Context, userID string) (bool, error) {
	all, err := s.repo.FindAllByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to list news for %s: %w", userID, err)
	}
	if len(all) == 0 {
		return false, ErrNewsNotFound
	}

	if s.archiver != nil {
		key, err := s.archiver.ArchiveNews(ctx, userID, all)
		if err != nil {
			return false, fmt.Errorf("failed to archive news for %s: %w", userID, err)
		}
		s.log.Info().Str("userId", userID).Str("key", key).Int("count", len(all)).Msg("Archived news")
	}

	n, err := s.repo.DeleteAllByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete news for %s: %w", userID, err)
	}
	s.log.Debug().Str("userId", userID).Int64("deleted", n).Msg("Deleted all news")
	return true, nil
}

// UpdateNews applies upd to the record newsID owned by userID.
func (s *NewsService) UpdateNews(ctx context.Context, upd models.NewsUpdate, newsID int, userID string) (*models.News, error) {
	news, err := s.owned(ctx, userID, newsID)
	if err != nil {
		return nil, err
	}

	upd.Apply(news)
	if err := s.repo.Save(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to save news %d: %w", newsID, err)
	}
	return news, nil
}

// GetNewsByNewsID returns ErrNewsNotFound when the record is missing or owned by someone else.
func (s *NewsService) GetNewsByNewsID(ctx context.Context, userID string, newsID int) (*models.News, error) {
	return s.owned(ctx, userID, newsID)
}

// GetAllNewsByUserID never returns a nil slice.
func (s *NewsService) GetAllNewsByUserID(ctx context.Context, userID string) ([]models.News, error) {
	all, err := s.repo.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news for %s: %w", userID, err)
	}
	if all == nil {
		all = []models.News{}
	}
	return all, nil
}

func (s *NewsService) owned(ctx context.Context, userID string, newsID int) (*models.News, error) {
	news, err := s.repo.FindByID(ctx, newsID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news %d: %w", newsID, err)
	}
	if news.UserID != userID {
		return nil, ErrNewsNotFound
	}
	return news, nil
}
