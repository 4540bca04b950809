package Controllers

import (
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetWidgetData aggregates fleet, checklist and maintenance figures for the
// manager dashboard.
// GET /api/stats/widget-data
func (dc *DashboardController) GetWidgetData(c *fiber.Ctx) error {
	var totalVehicles, activeVehicles int64
	dc.DB.Model(&Models.Vehicle{}).Count(&totalVehicles)
	dc.DB.Model(&Models.Vehicle{}).Where("active = ?", true).Count(&activeVehicles)

	var totalDrivers int64
	dc.DB.Model(&Models.User{}).
		Where("permission = ? AND is_approved = ?", Models.PermissionDriver, true).
		Count(&totalDrivers)

	dayStart, dayEnd := Models.DayBoundsUTC(time.Now())
	var checklistsToday int64
	dc.DB.Model(&Models.ChecklistSubmission{}).
		Where("submitted = ? AND submitted_at >= ? AND submitted_at < ?", true, dayStart, dayEnd).
		Count(&checklistsToday)

	coverage := 0.0
	if totalDrivers > 0 {
		coverage = float64(checklistsToday) / float64(totalDrivers) * 100
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	dc.DB.Model(&Models.MaintenanceRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts)

	maintenanceByStatus := make([]fiber.Map, 0, len(Models.StatusSequence))
	var openRequests int64
	for _, status := range Models.StatusSequence {
		var count int64
		for _, sc := range counts {
			if sc.Status == status {
				count = sc.Count
				break
			}
		}
		if status != Models.StatusFinalized {
			openRequests += count
		}
		maintenanceByStatus = append(maintenanceByStatus, fiber.Map{
			"status":   status,
			"count":    count,
			"progress": Models.StatusProgress(status),
		})
	}

	return c.JSON(fiber.Map{
		"fleet": fiber.Map{
			"total_vehicles":  totalVehicles,
			"active_vehicles": activeVehicles,
			"total_drivers":   totalDrivers,
		},
		"checklists_today": fiber.Map{
			"submitted":        checklistsToday,
			"expected":         totalDrivers,
			"coverage_percent": coverage,
		},
		"maintenance": fiber.Map{
			"open_requests": openRequests,
			"by_status":     maintenanceByStatus,
		},
	})
}
