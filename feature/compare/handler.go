package compare

import (
	"fmt"
	"io"
	"mime/multipart"

	"license-reconciler/core/logger"
	"license-reconciler/core/skumap"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id/workbook", h.HandleRunWorkbook)
	group.Get("/runs/:id/log", h.HandleRunLog)
	group.Delete("/runs/:id", h.HandleDeleteRun)
}

// HandleCompare runs a comparison over two uploaded workbooks.
// @Summary Compare PRE-EA and CSSM workbooks
// @Description Reconciles an uploaded PRE-EA workbook against a CSSM export. Returns a JSON report, or the annotated workbook when format=xlsx. An optional sku_map upload overrides the persisted exception table for this run.
// @Tags compare
// @Accept multipart/form-data
// @Produce json
// @Param pre_ea formData file true "PRE-EA workbook (.xlsx)"
// @Param cssm formData file true "CSSM workbook (.xlsx)"
// @Param sku_map formData file false "SKU exception table override (.json)"
// @Param format query string false "json (default) or xlsx"
// @Success 200 {object} compare.Report "Comparison Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unreadable Workbook"
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	preEA, err := formFileBytes(c, "pre_ea")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	cssm, err := formFileBytes(c, "cssm")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exceptions, err := h.exceptionsForRequest(c, l)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, workbook, err := h.service.Run(c.Context(), preEA, cssm, exceptions)
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	if c.Query("format") == "xlsx" {
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", workbookName))
		return c.Send(workbook)
	}
	return c.JSON(report)
}

// HandleListRuns lists archived comparison runs.
// @Summary List archived runs
// @Tags compare
// @Produce json
// @Success 200 {array} compare.RunInfo "Archived Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.Context())
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleRunWorkbook downloads the annotated workbook of an archived run.
// @Summary Download archived workbook
// @Tags compare
// @Produce octet-stream
// @Param id path string true "Run ID"
// @Success 200 {file} binary "Annotated Workbook"
// @Failure 404 {object} map[string]string "Run Not Found"
// @Router /compare/runs/{id}/workbook [get]
func (h *Handler) HandleRunWorkbook(c *fiber.Ctx) error {
	data, err := h.service.FetchWorkbook(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", workbookName))
	return c.Send(data)
}

// HandleRunLog downloads the decision log of an archived run.
// @Summary Download archived decision log
// @Tags compare
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} reconcile.LogEntry "Decision Log"
// @Failure 404 {object} map[string]string "Run Not Found"
// @Router /compare/runs/{id}/log [get]
func (h *Handler) HandleRunLog(c *fiber.Ctx) error {
	data, err := h.service.FetchLog(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleDeleteRun removes an archived run.
// @Summary Delete archived run
// @Tags compare
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/runs/{id} [delete]
func (h *Handler) HandleDeleteRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	if err := h.service.DeleteRun(c.Context(), id); err != nil {
		l.Error("Failed to delete run", zap.String("run_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// exceptionsForRequest returns the exception table for one comparison: an
// uploaded sku_map file overrides the persisted table for that run only.
func (h *Handler) exceptionsForRequest(c *fiber.Ctx, l *zap.Logger) (skumap.Map, error) {
	fh, err := c.FormFile("sku_map")
	if err != nil {
		// No override uploaded; fall back to the persisted table.
		return h.service.Exceptions(), nil
	}

	data, err := readMultipart(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read sku_map upload: %w", err)
	}
	m, err := skumap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid sku_map upload: %w", err)
	}
	l.Info("Using uploaded SKU exception table", zap.Int("entries", len(m)))
	return m, nil
}

func formFileBytes(c *fiber.Ctx, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s upload", field)
	}
	data, err := readMultipart(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	return data, nil
}

func readMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
