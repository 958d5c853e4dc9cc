package handlers

import (
	"errors"

	"docspace/internal/models"
	"docspace/internal/services/dashboard"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *dashboard.Service
}

func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the role-appropriate summary for the caller.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	switch claims.Role {
	case "hospital":
		stats, err := h.dashboardService.HospitalStats(claims.UserID)
		if err != nil {
			if errors.Is(err, dashboard.ErrHospitalNotFound) {
				return utils.NotFound(c, "Hospital profile not found")
			}
			return utils.InternalError(c, "Failed to load dashboard")
		}
		return utils.Success(c, stats)
	default:
		stats, err := h.dashboardService.DoctorStats(claims.UserID)
		if err != nil {
			return utils.InternalError(c, "Failed to load dashboard")
		}
		return utils.Success(c, stats)
	}
}
