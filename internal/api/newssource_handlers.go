package api

import (
	"context"

	"github.com/bilgisen/newz/internal/logger"
	"github.com/bilgisen/newz/internal/middleware"
	"github.com/bilgisen/newz/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewsSourceService is what the News Source handlers call
type NewsSourceService interface {
	AddNewsSource(ctx context.Context, source *models.NewsSource) (bool, error)
	DeleteNewsSource(ctx context.Context, id int) (bool, error)
	UpdateNewsSource(ctx context.Context, upd models.NewsSourceUpdate, id int) (*models.NewsSource, error)
	GetNewsSourceByID(ctx context.Context, userID string, id int) (*models.NewsSource, error)
	GetAllNewsSourceByUserID(ctx context.Context, userID string) ([]models.NewsSource, error)
}

type NewsSourceHandlers struct {
	svc      NewsSourceService
	validate *middleware.Validator
	log      *zerolog.Logger
}

func NewNewsSourceHandlers(svc NewsSourceService) *NewsSourceHandlers {
	return &NewsSourceHandlers{
		svc:      svc,
		validate: middleware.NewValidator(),
		log:      logger.Component("newssource-api"),
	}
}

// Register mounts the handlers on the /newssource group
func (h *NewsSourceHandlers) Register(r fiber.Router) {
	r.Post("", h.AddNewsSource)
	r.Delete("/:newssourceId", h.DeleteNewsSource)
	r.Put("/:newssourceId", h.UpdateNewsSource)
	r.Get("/:userId/:newssourceId", h.GetNewsSourceByID)
	r.Get("/:userId", h.GetAllNewsSourceByUserID)
}

// AddNewsSource handles POST /api/v1/newssource
func (h *NewsSourceHandlers) AddNewsSource(c *fiber.Ctx) error {
	var source models.NewsSource
	if err := h.validate.BindJSON(c, &source); err != nil {
		return err
	}

	created, err := h.svc.AddNewsSource(c.Context(), &source)
	if err != nil {
		return err
	}
	if !created {
		h.log.Info().Int("newsSourceId", source.NewsSourceID).Msg("News source already exists")
		return fiber.NewError(fiber.StatusConflict, "News source already exists")
	}

	h.log.Info().Int("newsSourceId", source.NewsSourceID).Msg("News source created")
	return c.Status(fiber.StatusCreated).JSON(source)
}

// DeleteNewsSource handles DELETE /api/v1/newssource/:newssourceId
func (h *NewsSourceHandlers) DeleteNewsSource(c *fiber.Ctx) error {
	id, err := pathID(c, "newssourceId")
	if err != nil {
		return err
	}

	deleted, err := h.svc.DeleteNewsSource(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		h.log.Info().Int("newsSourceId", id).Msg("News source not found")
		return fiber.NewError(fiber.StatusNotFound, "News source not found")
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "News source deleted successfully",
	})
}

// UpdateNewsSource handles PUT /api/v1/newssource/:newssourceId
func (h *NewsSourceHandlers) UpdateNewsSource(c *fiber.Ctx) error {
	id, err := pathID(c, "newssourceId")
	if err != nil {
		return err
	}

	var upd models.NewsSourceUpdate
	if err := h.validate.BindJSON(c, &upd); err != nil {
		return err
	}

	source, err := h.svc.UpdateNewsSource(c.Context(), upd, id)
	if err != nil {
		return notFound(err, "News source not found")
	}
	return c.JSON(source)
}

// GetNewsSourceByID handles GET /api/v1/newssource/:userId/:newssourceId
func (h *NewsSourceHandlers) GetNewsSourceByID(c *fiber.Ctx) error {
	id, err := pathID(c, "newssourceId")
	if err != nil {
		return err
	}

	source, err := h.svc.GetNewsSourceByID(c.Context(), c.Params("userId"), id)
	if err != nil {
		return notFound(err, "News source not found")
	}
	return c.JSON(source)
}

// GetAllNewsSourceByUserID handles GET /api/v1/newssource/:userId
func (h *NewsSourceHandlers) GetAllNewsSourceByUserID(c *fiber.Ctx) error {
	all, err := h.svc.GetAllNewsSourceByUserID(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(all)
}
