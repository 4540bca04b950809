package Controllers

import (
	"strconv"
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
)

// LogsResponse represents the response structure for the logs API
type LogsResponse struct {
	Logs       []Models.AuditLog `json:"logs"`
	TotalLogs  int64             `json:"total_logs"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	DateFrom   time.Time         `json:"date_from"`
	DateTo     time.Time         `json:"date_to"`
}

// GetLogs retrieves audit logs with pagination and date filtering. Admin only.
// GET /api/logs
func GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	dateFromStr := c.Query("date_from", "")
	dateToStr := c.Query("date_to", "")
	pathFilter := c.Query("path", "")
	methodFilter := c.Query("method", "")
	userFilter := c.Query("user_id", "")

	// Default to today when no range is given
	var dateFrom, dateTo time.Time
	if dateFromStr == "" && dateToStr == "" {
		dateFrom, dateTo = Models.DayBoundsUTC(time.Now())
	} else {
		if dateFromStr != "" {
			parsed, err := time.Parse("2006-01-02", dateFromStr)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid date_from format. Use YYYY-MM-DD",
				})
			}
			dateFrom = parsed
		} else {
			dateFrom = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
		}

		if dateToStr != "" {
			parsed, err := time.Parse("2006-01-02", dateToStr)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid date_to format. Use YYYY-MM-DD",
				})
			}
			dateTo = parsed.Add(24 * time.Hour)
		} else {
			dateTo = time.Now().UTC()
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	query := Models.DB.Model(&Models.AuditLog{}).
		Where("created_at >= ? AND created_at < ?", dateFrom, dateTo)
	if pathFilter != "" {
		query = query.Where("path LIKE ?", "%"+pathFilter+"%")
	}
	if methodFilter != "" {
		query = query.Where("method = ?", methodFilter)
	}
	if userFilter != "" {
		query = query.Where("user_id = ?", userFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count logs",
		})
	}

	var logs []Models.AuditLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read logs",
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return c.JSON(LogsResponse{
		Logs:       logs,
		TotalLogs:  total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
}

// GetLogStats summarizes request activity per path. Admin only.
// GET /api/logs/stats
func GetLogStats(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "7"))
	if days < 1 || days > 90 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	type pathStat struct {
		Path        string  `json:"path"`
		Method      string  `json:"method"`
		Count       int64   `json:"count"`
		AvgLatency  float64 `json:"avg_latency_ms"`
		MaxLatency  int64   `json:"max_latency_ms"`
		ErrorCount  int64   `json:"error_count"`
		SuccessRate float64 `json:"success_rate"`
	}

	var stats []pathStat
	err := Models.DB.Model(&Models.AuditLog{}).
		Select("path, method, COUNT(*) as count, AVG(latency_ms) as avg_latency, MAX(latency_ms) as max_latency, SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END) as error_count").
		Where("created_at >= ?", since).
		Group("path, method").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute log statistics",
		})
	}

	for i := range stats {
		if stats[i].Count > 0 {
			stats[i].SuccessRate = float64(stats[i].Count-stats[i].ErrorCount) / float64(stats[i].Count) * 100
		}
	}

	var total int64
	Models.DB.Model(&Models.AuditLog{}).Where("created_at >= ?", since).Count(&total)

	return c.JSON(fiber.Map{
		"total_requests": total,
		"since":          since,
		"paths":          stats,
	})
}
