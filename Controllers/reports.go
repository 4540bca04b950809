package Controllers

import (
	"bytes"
	"fmt"
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func checkmark(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOK"
}

// ExportChecklists generates an xlsx report of checklist submissions.
// GET /api/reports/checklists?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (rc *ReportController) ExportChecklists(c *fiber.Ctx) error {
	query := rc.DB.Model(&Models.ChecklistSubmission{}).Where("submitted = ?", true)
	if start := c.Query("start_date"); start != "" {
		query = query.Where("submission_day >= ?", start)
	}
	if end := c.Query("end_date"); end != "" {
		query = query.Where("submission_day <= ?", end)
	}

	var checklists []Models.ChecklistSubmission
	if err := query.Order("submitted_at ASC").Find(&checklists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load checklists",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Checklists"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create sheet",
		})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create style",
		})
	}

	headers := []string{
		"Date", "Time (UTC)", "Driver", "Plate", "Odometer",
		"Tires", "Lights", "Brakes", "Oil", "Water", "Cleanliness", "Notes",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, checklist := range checklists {
		row := rowIdx + 2
		values := []interface{}{
			checklist.SubmissionDay,
			checklist.SubmittedAt.UTC().Format("15:04:05"),
			checklist.DriverName,
			checklist.PlateNumber,
			checklist.OdometerReading,
			checkmark(checklist.TiresOK),
			checkmark(checklist.LightsOK),
			checkmark(checklist.BrakesOK),
			checkmark(checklist.OilLevelOK),
			checkmark(checklist.WaterLevelOK),
			checkmark(checklist.CleanlinessOK),
			checklist.Notes,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "E", "K", 10)
	f.SetColWidth(sheetName, "L", "L", 40)

	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate file",
		})
	}

	fileName := fmt.Sprintf("checklists_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	return c.Send(buffer.Bytes())
}

// ExportMaintenance generates an xlsx report of maintenance requests.
// GET /api/reports/maintenance
func (rc *ReportController) ExportMaintenance(c *fiber.Ctx) error {
	query := rc.DB.Model(&Models.MaintenanceRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []Models.MaintenanceRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load maintenance requests",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Maintenance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create sheet",
		})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create style",
		})
	}

	headers := []string{
		"Created", "Plate", "Kind", "Priority", "Description",
		"Status", "Progress %", "Order Ref", "Supplier", "Cost", "Requested By",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, request := range requests {
		row := rowIdx + 2
		cost := ""
		if request.Cost != nil {
			cost = fmt.Sprintf("%.2f", *request.Cost)
		}
		values := []interface{}{
			request.CreatedAt.UTC().Format("2006-01-02 15:04"),
			request.PlateNumber,
			request.Kind,
			request.Priority,
			request.Description,
			request.Status,
			Models.StatusProgress(request.Status),
			request.OrderReference,
			request.SupplierReference,
			cost,
			request.RequestedByName,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 40)
	f.SetColWidth(sheetName, "F", "K", 14)

	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate file",
		})
	}

	fileName := fmt.Sprintf("maintenance_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	return c.Send(buffer.Bytes())
}
