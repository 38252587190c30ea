package integrity

import (
	"nuscenes-devkit/core/logger"
	"nuscenes-devkit/feature/tables"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/integrity", h.HandleIntegrityCheck)
}

// HandleIntegrityCheck runs every integrity check.
// @Summary Run Integrity Checks
// @Description Walks the sample and annotation chains and verifies the references that loading tolerates.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report "Integrity Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Running integrity checks")

	report, err := h.service.Run(c.Context())
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		return c.Status(tables.StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Integrity checks completed",
		zap.String("status", report.Status),
		zap.Int("issues", report.Issues),
		zap.String("duration", report.ExecutionTime))
	return c.JSON(report)
}
