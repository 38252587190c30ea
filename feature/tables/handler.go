package tables

import (
	"errors"

	"nuscenes-devkit/core/logger"
	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for table queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the table routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tables")
	group.Get("/", h.HandleList)
	group.Get("/:table", h.HandlePage)
	group.Get("/:table/:token", h.HandleGet)
}

// StatusFor maps a dataset error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, nusc.ErrMalformed),
		errors.Is(err, table.ErrInvalidStep),
		errors.Is(err, table.ErrIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, nusc.ErrUnknownTable), errors.Is(err, nusc.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, nusc.ErrTableUnavailable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	status := StatusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists every table of the snapshot.
// @Summary List Tables
// @Description Returns row counts, availability and duplicate counts for every table in canonical order.
// @Tags tables
// @Produce json
// @Success 200 {array} nusc.TableStat "Table statistics"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tables [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	stats, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err, "Listing tables failed")
	}
	return c.JSON(stats)
}

// HandlePage returns a slice of a table.
// @Summary Browse Table
// @Description Returns rows of a table in source order. A negative offset counts from the end.
// @Tags tables
// @Produce json
// @Param table path string true "Table name (e.g. 'sample')"
// @Param offset query int false "First row" default(0)
// @Param limit query int false "Maximum number of rows" default(100)
// @Param step query int false "Take every step-th row" default(1)
// @Success 200 {object} Page "Rows"
// @Failure 400 {object} map[string]string "Invalid slice"
// @Failure 404 {object} map[string]string "Unknown table"
// @Failure 409 {object} map[string]string "Table not loaded"
// @Router /tables/{table} [get]
func (h *Handler) HandlePage(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", DefaultLimit)
	step := c.QueryInt("step", 1)

	page, err := h.service.Page(c.Context(), c.Params("table"), offset, limit, step)
	if err != nil {
		return h.fail(c, err, "Browsing table failed")
	}
	return c.JSON(page)
}

// HandleGet looks up one record by token.
// @Summary Get Record
// @Description Returns the fully resolved record with the given token.
// @Tags tables
// @Produce json
// @Param table path string true "Table name (e.g. 'sample')"
// @Param token path string true "32 character hex token"
// @Success 200 {object} map[string]interface{} "Record fields in schema order"
// @Failure 400 {object} map[string]string "Malformed token"
// @Failure 404 {object} map[string]string "Unknown table or token"
// @Failure 409 {object} map[string]string "Table not loaded"
// @Router /tables/{table}/{token} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	fields, err := h.service.Get(c.Context(), c.Params("table"), c.Params("token"))
	if err != nil {
		return h.fail(c, err, "Record lookup failed")
	}
	return c.JSON(fields)
}
