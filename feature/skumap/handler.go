package skumap

import (
	"license-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the SKU exception table.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the skumap routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/skumap")
	group.Get("/", h.HandleGetTable)
	group.Put("/:pid", h.HandlePutMapping)
	group.Delete("/:pid", h.HandleRemoveMapping)
}

// HandleGetTable returns the full exception table.
// @Summary Get SKU exception table
// @Tags skumap
// @Produce json
// @Success 200 {object} map[string]string "Exception Table"
// @Router /skumap [get]
func (h *Handler) HandleGetTable(c *fiber.Ctx) error {
	return c.JSON(h.service.Table())
}

type putMappingRequest struct {
	SKU string `json:"sku"`
}

// HandlePutMapping upserts one mapping.
// @Summary Upsert SKU exception
// @Description Maps a PRE-EA SKU to a CSSM SKU. Overwrites silently when the key exists.
// @Tags skumap
// @Accept json
// @Produce json
// @Param pid path string true "PRE-EA SKU"
// @Param body body putMappingRequest true "Target CSSM SKU"
// @Success 200 {object} map[string]string "Updated Table"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /skumap/{pid} [put]
func (h *Handler) HandlePutMapping(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req putMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	m, err := h.service.Put(c.Params("pid"), req.SKU)
	if err != nil {
		l.Error("Failed to save SKU exception", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(m)
}

// HandleRemoveMapping removes one mapping.
// @Summary Remove SKU exception
// @Tags skumap
// @Produce json
// @Param pid path string true "PRE-EA SKU"
// @Success 200 {object} map[string]string "Updated Table"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /skumap/{pid} [delete]
func (h *Handler) HandleRemoveMapping(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	m, err := h.service.Remove(c.Params("pid"))
	if err != nil {
		l.Error("Failed to remove SKU exception", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(m)
}
