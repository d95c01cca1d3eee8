package baggage

import (
	"strconv"

	"baggage-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for scanned baggage.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the baggage routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/baggage")
	group.Post("/scan", h.HandleScan)
	group.Get("/unreconciled", h.HandleUnreconciled)
	group.Get("/statistics", h.HandleStatistics)
	group.Post("/:id/rush", h.HandleMarkRush)
	group.Delete("/:id/rush", h.HandleCancelRush)
}

// HandleScan records a tag scan idempotently.
// @Summary Record Baggage Scan
// @Description Records a scanned baggage tag. Scanning the same tag twice returns the existing row.
// @Tags baggage
// @Accept json
// @Produce json
// @Param scan body ScanInput true "Scan payload"
// @Success 200 {object} models.ScannedBaggage "Existing baggage"
// @Success 201 {object} models.ScannedBaggage "Created baggage"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /baggage/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in ScanInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid scan payload"})
	}
	if in.Tag == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tag value is required"})
	}

	bag, created, err := h.service.CreateOrGetScannedBaggage(c.Context(), in)
	if err != nil {
		l.Error("Scan intake failed", zap.Error(err), zap.String("tag", in.Tag))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(bag)
}

// HandleUnreconciled lists bags still awaiting reconciliation.
// @Summary List Unreconciled Baggage
// @Description Lists every scanned bag at this airport still eligible for reconciliation.
// @Tags baggage
// @Produce json
// @Success 200 {array} models.ScannedBaggage
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /baggage/unreconciled [get]
func (h *Handler) HandleUnreconciled(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	bags, err := h.service.Unreconciled(c.Context())
	if err != nil {
		l.Error("Unreconciled listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(bags)
}

// HandleStatistics returns the aggregate dashboard view.
// @Summary Get Baggage Statistics
// @Description Returns status counts, report buckets and reconciliation rates for this airport.
// @Tags baggage
// @Produce json
// @Success 200 {object} Statistics
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /baggage/statistics [get]
func (h *Handler) HandleStatistics(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Statistics(c.Context())
	if err != nil {
		l.Error("Statistics computation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleMarkRush marks a bag as rerouted.
// @Summary Mark Baggage Rush
// @Description Marks a bag as RUSH (could not be loaded, must be rerouted).
// @Tags baggage
// @Accept json
// @Produce json
// @Param id path int true "Baggage ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /baggage/{id}/rush [post]
func (h *Handler) HandleMarkRush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid baggage id"})
	}

	var body struct {
		UserID  string `json:"user_id"`
		Remarks string `json:"remarks"`
	}
	_ = c.BodyParser(&body)

	if err := h.service.MarkRush(c.Context(), uint(id), body.UserID, body.Remarks); err != nil {
		l.Error("Rush marking failed", zap.Error(err), zap.Uint64("baggage_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "rush"})
}

// HandleCancelRush takes a bag out of rush status.
// @Summary Cancel Baggage Rush
// @Description Cancels a RUSH reroute into an explicit target status (reconciled, scanned, arrived).
// @Tags baggage
// @Produce json
// @Param id path int true "Baggage ID"
// @Param target query string true "Target status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /baggage/{id}/rush [delete]
func (h *Handler) HandleCancelRush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid baggage id"})
	}

	target := c.Query("target")
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target status is required"})
	}

	if err := h.service.CancelRush(c.Context(), uint(id), target); err != nil {
		l.Error("Rush cancellation failed", zap.Error(err), zap.Uint64("baggage_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": target})
}
