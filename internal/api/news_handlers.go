package api

import (
	"context"

	"github.com/bilgisen/newz/internal/logger"
	"github.com/bilgisen/newz/internal/middleware"
	"github.com/bilgisen/newz/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewsService is what the News handlers call
type NewsService interface {
	AddNews(ctx context.Context, news *models.News) (bool, error)
	DeleteNews(ctx context.Context, userID string, newsID int) (bool, error)
	DeleteAllNews(ctx context.Context, userID string) (bool, error)
	UpdateNews(ctx context.Context, upd models.NewsUpdate, newsID int, userID string) (*models.News, error)
	GetNewsByNewsID(ctx context.Context, userID string, newsID int) (*models.News, error)
	GetAllNewsByUserID(ctx context.Context, userID string) ([]models.News, error)
}

type NewsHandlers struct {
	svc      NewsService
	validate *middleware.Validator
	log      *zerolog.Logger
}

func NewNewsHandlers(svc NewsService) *NewsHandlers {
	return &NewsHandlers{
		svc:      svc,
		validate: middleware.NewValidator(),
		log:      logger.Component("news-api"),
	}
}

// Register mounts the handlers on r, which should be the /news group
func (h *NewsHandlers) Register(r fiber.Router) {
	r.Post("", h.AddNews)
	r.Delete("/:userId/:newsId", h.DeleteNews)
	r.Delete("/:userId", h.DeleteAllNews)
	r.Put("/:userId/:newsId", h.UpdateNews)
	r.Get("/:userId/:newsId", h.GetNewsByNewsID)
	r.Get("/:userId", h.GetAllNewsByUserID)
}

// AddNews handles POST /api/v1/news
func (h *NewsHandlers) AddNews(c *fiber.Ctx) error {
	var news models.News
	if err := h.validate.BindJSON(c, &news); err != nil {
		return err
	}

	created, err := h.svc.AddNews(c.Context(), &news)
	if err != nil {
		return err
	}
	if !created {
		h.log.Info().Int("newsId", news.NewsID).Msg("News already exists")
		return fiber.NewError(fiber.StatusConflict, "News already exists")
	}

	h.log.Info().Int("newsId", news.NewsID).Str("userId", news.UserID).Msg("News created")
	return c.Status(fiber.StatusCreated).JSON(news)
}

// DeleteNews handles DELETE /api/v1/news/:userId/:newsId
func (h *NewsHandlers) DeleteNews(c *fiber.Ctx) error {
	newsID, err := pathID(c, "newsId")
	if err != nil {
		return err
	}
	userID := c.Params("userId")

	deleted, err := h.svc.DeleteNews(c.Context(), userID, newsID)
	if err != nil {
		return err
	}
	if !deleted {
		h.log.Info().Int("newsId", newsID).Str("userId", userID).Msg("News not found")
		return fiber.NewError(fiber.StatusNotFound, "News not found")
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "News deleted successfully",
	})
}

// DeleteAllNews handles DELETE /api/v1/news/:userId
func (h *NewsHandlers) DeleteAllNews(c *fiber.Ctx) error {
	userID := c.Params("userId")

	if _, err := h.svc.DeleteAllNews(c.Context(), userID); err != nil {
		return notFound(err, "No news found for user")
	}

	h.log.Info().Str("userId", userID).Msg("All news deleted")
	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "All news deleted successfully",
	})
}

// UpdateNews handles PUT /api/v1/news/:userId/:newsId
func (h *NewsHandlers) UpdateNews(c *fiber.Ctx) error {
	newsID, err := pathID(c, "newsId")
	if err != nil {
		return err
	}

	var upd models.NewsUpdate
	if err := h.validate.BindJSON(c, &upd); err != nil {
		return err
	}

	news, err := h.svc.UpdateNews(c.Context(), upd, newsID, c.Params("userId"))
	if err != nil {
		return notFound(err, "News not found")
	}
	return c.JSON(news)
}

// GetNewsByNewsID handles GET /api/v1/news/:userId/:newsId
func (h *NewsHandlers) GetNewsByNewsID(c *fiber.Ctx) error {
	newsID, err := pathID(c, "newsId")
	if err != nil {
		return err
	}

	news, err := h.svc.GetNewsByNewsID(c.Context(), c.Params("userId"), newsID)
	if err != nil {
		return notFound(err, "News not found")
	}
	return c.JSON(news)
}

// GetAllNewsByUserID handles GET /api/v1/news/:userId
func (h *NewsHandlers) GetAllNewsByUserID(c *fiber.Ctx) error {
	all, err := h.svc.GetAllNewsByUserID(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(all)
}
