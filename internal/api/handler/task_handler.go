package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixflow/maintenance-system/internal/api/metrics"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// TaskHandler serves the task-status endpoint. "Task" is the worker
// dashboard's name for a report.
type TaskHandler struct {
	service ports.ReportService
}

func NewTaskHandler(service ports.ReportService) *TaskHandler {
	return &TaskHandler{service: service}
}

// SetStatus handles PUT /api/tasks/:id/status.
//
// @Summary      Update task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Task id"
// @Param        body  body      statusRequest  true  "New status: pending, in-progress or completed"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/tasks/{id}/status [put]
func (h *TaskHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	task, err := h.service.SetStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.TaskStatusTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, taskResponse{
		Success: true,
		Message: "Task status updated",
		Task:    task,
	})
}
