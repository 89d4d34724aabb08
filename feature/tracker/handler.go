package tracker

import (
	"errors"

	"leader-dojo/core/logger"
	"leader-dojo/feature/importer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the tracker store.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tracker routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tracker")
	group.Post("/import", h.HandleImport)
	group.Get("/export", h.HandleExport)
	group.Get("/projects", h.HandleListProjects)
	group.Get("/commitments", h.HandleListCommitments)
	group.Delete("/projects/:id", h.HandleDeleteProject)
}

// HandleImport merges a snapshot payload into the store.
// @Summary Import Snapshot
// @Description Parse a snapshot document and reconcile it into the store. Returns per-kind counts and warnings.
// @Tags tracker
// @Accept json
// @Produce json
// @Param snapshot body importer.Snapshot true "Snapshot document"
// @Success 200 {object} importer.Report "Import Report"
// @Failure 400 {object} map[string]string "Malformed or unsupported snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tracker/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.ImportSnapshot(c.Context(), c.Body())
	if err != nil {
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			l.Warn("Snapshot rejected", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Snapshot import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleExport renders the current store as a snapshot document.
// @Summary Export Snapshot
// @Description Render all non-deleted entities as a snapshot document suitable for re-import.
// @Tags tracker
// @Produce json
// @Success 200 {object} importer.Snapshot "Snapshot document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tracker/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	payload, err := h.service.ExportSnapshot(c.Context())
	if err != nil {
		l.Error("Snapshot export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleListProjects lists projects.
// @Summary List Projects
// @Description List non-deleted projects, optionally filtered by status.
// @Tags tracker
// @Produce json
// @Param status query string false "Project status filter"
// @Success 200 {array} models.Project "Projects"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tracker/projects [get]
func (h *Handler) HandleListProjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	projects, err := h.service.ListProjects(c.Context(), c.Query("status"))
	if err != nil {
		l.Error("Project listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(projects)
}

// HandleListCommitments lists commitments.
// @Summary List Commitments
// @Description List non-deleted commitments, optionally filtered by status and direction.
// @Tags tracker
// @Produce json
// @Param status query string false "Commitment status filter"
// @Param direction query string false "Commitment direction filter (i_owe, waiting_for)"
// @Success 200 {array} models.Commitment "Commitments"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tracker/commitments [get]
func (h *Handler) HandleListCommitments(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	commitments, err := h.service.ListCommitments(c.Context(), c.Query("status"), c.Query("direction"))
	if err != nil {
		l.Error("Commitment listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(commitments)
}

// HandleDeleteProject removes a project and everything it owns.
// @Summary Delete Project
// @Description Physically remove a project together with its entries, commitments and reflections.
// @Tags tracker
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tracker/projects/{id} [delete]
func (h *Handler) HandleDeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.DeleteProject(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "project not found",
			})
		}
		l.Error("Project deletion failed", zap.Error(err), zap.String("project_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Project deleted", zap.String("project_id", id))
	return c.JSON(fiber.Map{"status": "deleted"})
}
