package manifest

import (
	"io"
	"strconv"

	"baggage-manager/core/logger"
	"baggage-manager/core/matching"
	"baggage-manager/feature/manifest/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for manifest reports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the manifest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/manifests")
	group.Post("/upload", h.HandleUpload)
	group.Post("/upload-and-reconcile", h.HandleUploadAndReconcile)
	group.Post("/manual-match", h.HandleManualMatch)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/reconcile", h.HandleReconcile)
	group.Get("/:id/suggestions/:baggageID", h.HandleSuggestions)
}

// readUpload extracts the manifest file and its content from a multipart
// form. A raw text body with a filename query parameter is accepted too;
// handheld devices cannot always build multipart requests.
func (h *Handler) readUpload(c *fiber.Ctx) (models.FileInfo, string, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return models.FileInfo{}, "", err
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return models.FileInfo{}, "", err
		}
		info := models.FileInfo{
			Name:     fileHeader.Filename,
			Size:     fileHeader.Size,
			MimeType: fileHeader.Header.Get("Content-Type"),
		}
		return info, string(content), nil
	}

	name := c.Query("filename")
	if name == "" {
		return models.FileInfo{}, "", fiber.NewError(fiber.StatusBadRequest, "file part or filename query is required")
	}
	body := c.Body()
	info := models.FileInfo{
		Name:     name,
		Size:     int64(len(body)),
		MimeType: c.Get(fiber.HeaderContentType),
	}
	return info, string(body), nil
}

// matchOptions builds matcher options from query parameters, starting from
// the production defaults.
func matchOptions(c *fiber.Ctx) matching.Options {
	opts := matching.DefaultOptions()
	if v := c.Query("fuzzy"); v != "" {
		opts.Fuzzy = v == "true" || v == "1"
	}
	if v, err := strconv.Atoi(c.Query("threshold")); err == nil && v > 0 && v <= 100 {
		opts.FuzzyThreshold = v
	}
	return opts
}

// HandleUpload parses, validates and persists one manifest file.
// @Summary Upload Manifest
// @Description Parses and stores a manifest file. Validation failures persist nothing and are returned in full.
// @Tags manifests
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Manifest file"
// @Success 201 {object} UploadResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} UploadResult "Validation failed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	file, content, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.UploadManifest(c.Context(), file, content, c.Query("user_id"))
	if err != nil {
		l.Error("Manifest upload failed", zap.Error(err), zap.String("file", file.Name))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !result.Validation.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleReconcile runs the matcher over a persisted report.
// @Summary Reconcile Report
// @Description Runs reconciliation between a report's manifest items and the bags awaiting reconciliation.
// @Tags manifests
// @Produce json
// @Param id path int true "Report ID"
// @Param fuzzy query bool false "Enable fuzzy matching (default true)"
// @Param threshold query int false "Fuzzy acceptance threshold (default 80)"
// @Success 200 {object} ReconcileResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/{id}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid report id"})
	}

	result, err := h.service.ReconcileReport(c.Context(), uint(id), c.Query("user_id"), matchOptions(c))
	if err != nil {
		l.Error("Reconciliation run failed", zap.Error(err), zap.Uint64("report_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleUploadAndReconcile chains an upload and a reconciliation run.
// @Summary Upload And Reconcile
// @Description Uploads a manifest and immediately reconciles it in one call.
// @Tags manifests
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Manifest file"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} UploadResult "Validation failed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/upload-and-reconcile [post]
func (h *Handler) HandleUploadAndReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	file, content, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	upload, run, err := h.service.UploadAndReconcile(c.Context(), file, content, c.Query("user_id"), matchOptions(c))
	if err != nil {
		l.Error("Upload-and-reconcile failed", zap.Error(err), zap.String("file", file.Name))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !upload.Validation.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(upload)
	}
	return c.JSON(fiber.Map{"upload": upload, "reconciliation": run})
}

// HandleList lists manifest reports for this airport.
// @Summary List Manifest Reports
// @Description Lists every manifest report uploaded at this airport, most recent first.
// @Tags manifests
// @Produce json
// @Success 200 {array} models.ManifestReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	reports, err := h.service.Reports(c.Context())
	if err != nil {
		l.Error("Report listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleGet returns one report with its manifest lines.
// @Summary Get Manifest Report
// @Description Returns one manifest report together with its parsed items.
// @Tags manifests
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} ReportDetail
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid report id"})
	}

	detail, err := h.service.ReportWithItems(c.Context(), uint(id))
	if err != nil {
		l.Error("Report lookup failed", zap.Error(err), zap.Uint64("report_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(detail)
}

// HandleSuggestions returns near-matches for one bag against a report.
// @Summary Suggest Matches
// @Description Returns the closest unclaimed manifest items of a report for one bag, for manual review.
// @Tags manifests
// @Produce json
// @Param id path int true "Report ID"
// @Param baggageID path int true "Baggage ID"
// @Param max query int false "Maximum suggestions (default 5)"
// @Success 200 {array} matching.Suggestion
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/{id}/suggestions/{baggageID} [get]
func (h *Handler) HandleSuggestions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid report id"})
	}
	baggageID, err := strconv.ParseUint(c.Params("baggageID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid baggage id"})
	}

	max := 5
	if v, convErr := strconv.Atoi(c.Query("max")); convErr == nil && v > 0 {
		max = v
	}

	suggestions, err := h.service.SuggestedMatches(c.Context(), uint(id), uint(baggageID), max)
	if err != nil {
		l.Error("Suggestion lookup failed", zap.Error(err),
			zap.Uint64("report_id", id), zap.Uint64("baggage_id", baggageID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(suggestions)
}

// ManualMatchInput is the payload of a human-confirmed pairing.
type ManualMatchInput struct {
	BaggageID uint   `json:"baggage_id"`
	ItemID    uint   `json:"item_id"`
	UserID    string `json:"user_id"`
}

// HandleManualMatch records a human-confirmed pairing.
// @Summary Manual Match
// @Description Records a human-confirmed bag-to-item pairing, bypassing the matcher. One-to-one is still enforced.
// @Tags manifests
// @Accept json
// @Produce json
// @Param match body ManualMatchInput true "Pairing"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifests/manual-match [post]
func (h *Handler) HandleManualMatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var in ManualMatchInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match payload"})
	}
	if in.BaggageID == 0 || in.ItemID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "baggage_id and item_id are required"})
	}

	if err := h.service.ManualReconciliation(c.Context(), in.BaggageID, in.ItemID, in.UserID); err != nil {
		l.Error("Manual match failed", zap.Error(err),
			zap.Uint("baggage_id", in.BaggageID), zap.Uint("item_id", in.ItemID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "matched"})
}
