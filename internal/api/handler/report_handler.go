package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/api/metrics"
	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
	"github.com/fixflow/maintenance-system/internal/infrastructure/storage"
)

// ReportHandler handles HTTP requests for report operations.
type ReportHandler struct {
	service ports.ReportService
	uploads *storage.LocalStore
	logger  zerolog.Logger
}

func NewReportHandler(service ports.ReportService, uploads *storage.LocalStore, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{service: service, uploads: uploads, logger: logger}
}

// List handles GET /api/reports — role-filtered listing.
//
// @Summary      List reports visible to the caller
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportsResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListReports(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportsResponse{Success: true, Reports: reports})
}

// ListPublic handles GET /api/reports/public — the unauthenticated board.
//
// @Summary      List all reports (public board)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  reportsResponse
// @Router       /api/reports/public [get]
func (h *ReportHandler) ListPublic(c echo.Context) error {
	reports, err := h.service.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportsResponse{Success: true, Reports: reports})
}

// Get handles GET /api/reports/:id.
//
// @Summary      Get a single report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  reportResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.service.GetReport(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Success: true, Report: report})
}

// Create handles POST /api/reports — multipart form with an optional image.
//
// @Summary      Submit a new report
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Report title"
// @Param        description  formData  string  false  "Details"
// @Param        location     formData  string  false  "Where the issue is"
// @Param        category     formData  string  false  "Category"
// @Param        priority     formData  string  false  "low, medium or high"
// @Param        image        formData  file    false  "Photo of the issue"
// @Success      201  {object}  reportResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return err
	}

	report, err := h.service.CreateReport(c.Request().Context(), actor, ports.CreateReportInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
		Category:    c.FormValue("category"),
		Priority:    c.FormValue("priority"),
		ImagePath:   imagePath,
	})
	if err != nil {
		return err
	}

	metrics.ReportsCreatedTotal.WithLabelValues(report.Category).Inc()
	return c.JSON(http.StatusCreated, reportResponse{
		Success: true,
		Report:  report,
		Message: "Report created successfully!",
	})
}

// Update handles PUT /api/reports/:id — field patch plus optional note.
//
// @Summary      Update a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateReportRequest  true  "Fields to patch"
// @Success      200   {object}  reportResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/reports/{id} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}

	report, err := h.service.UpdateReport(c.Request().Context(), actor, c.Param("id"), ports.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		Note:        req.Note,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reportResponse{
		Success: true,
		Report:  report,
		Message: "Report updated successfully!",
	})
}

// Delete handles DELETE /api/reports/:id. Admin-only via RBAC middleware.
//
// @Summary      Delete a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteReport(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Report deleted successfully",
	})
}

// Activity handles GET /api/reports/:id/activity — the audit trail.
//
// @Summary      Report audit trail
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  activityResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/reports/{id}/activity [get]
func (h *ReportHandler) Activity(c echo.Context) error {
	events, err := h.service.Activity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{Success: true, Events: events})
}

// saveImage stores the optional multipart "image" field and returns the public
// path under /api/uploads. A missing or empty file field is not an error.
func (h *ReportHandler) saveImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No image part in the form; proceed without one.
		return "", nil
	}
	if fh.Filename == "" {
		return "", nil
	}

	if !storage.Allowed(fh.Filename) {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: file type not allowed", domain.ErrValidation)
	}

	src, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Error saving file")
	}
	defer src.Close()

	name, err := h.uploads.Save(fh.Filename, src)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		h.logger.Error().Err(err).Str("filename", fh.Filename).Msg("image save failed")
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Error saving file")
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return "/api/uploads/" + name, nil
}
