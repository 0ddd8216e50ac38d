package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// AdminHandler serves the admin-only worker roster and stats endpoints. Both
// routes sit behind the admin RBAC middleware.
type AdminHandler struct {
	users ports.UserRepository
	stats ports.StatsService
}

func NewAdminHandler(users ports.UserRepository, stats ports.StatsService) *AdminHandler {
	return &AdminHandler{users: users, stats: stats}
}

// Workers handles GET /api/workers.
//
// @Summary      List workers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workersResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/workers [get]
func (h *AdminHandler) Workers(c echo.Context) error {
	workers, err := h.users.ListWorkers(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]workerView, 0, len(workers))
	for _, w := range workers {
		views = append(views, workerView{
			ID:       w.ID,
			Name:     w.Name,
			Username: w.Username,
			Team:     "Unassigned",
		})
	}

	return c.JSON(http.StatusOK, workersResponse{Success: true, Workers: views})
}

// Stats handles GET /api/stats.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.stats.ComputeStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}
