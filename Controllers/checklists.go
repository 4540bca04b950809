package Controllers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChecklistController handles daily checklist endpoints
type ChecklistController struct {
	DB *gorm.DB
}

func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{DB: db}
}

type ChecklistRequest struct {
	VehicleID       uint     `json:"vehicle_id" validate:"required"`
	OdometerReading *int64   `json:"odometer_reading" validate:"required,min=0"`
	TiresOK         bool     `json:"tires_ok"`
	LightsOK        bool     `json:"lights_ok"`
	BrakesOK        bool     `json:"brakes_ok"`
	OilLevelOK      bool     `json:"oil_level_ok"`
	WaterLevelOK    bool     `json:"water_level_ok"`
	CleanlinessOK   bool     `json:"cleanliness_ok"`
	Notes           string   `json:"notes"`
	ImageRefs       []string `json:"image_refs" validate:"max=4"`
}

// CreateChecklist records the caller's checklist for today.
// POST /api/checklists
func (cc *ChecklistController) CreateChecklist(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	var req ChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	// Check if vehicle exists
	var vehicle Models.Vehicle
	if err := cc.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Vehicle not found",
		})
	}

	now := time.Now().UTC()

	exists, _, err := Models.HasSubmittedToday(cc.DB, user.ID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check today's submissions",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "You already submitted a checklist today",
		})
	}

	imageRefs, err := encodeImageRefs(req.ImageRefs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image references",
		})
	}

	submission := Models.ChecklistSubmission{
		VehicleID:       vehicle.ID,
		DriverID:        user.ID,
		PlateNumber:     vehicle.PlateNumber,
		DriverName:      user.Name,
		SubmittedAt:     now,
		OdometerReading: *req.OdometerReading,
		TiresOK:         req.TiresOK,
		LightsOK:        req.LightsOK,
		BrakesOK:        req.BrakesOK,
		OilLevelOK:      req.OilLevelOK,
		WaterLevelOK:    req.WaterLevelOK,
		CleanlinessOK:   req.CleanlinessOK,
		Notes:           strings.TrimSpace(req.Notes),
		ImageRefs:       imageRefs,
		Submitted:       true,
	}

	// The unique index on (driver_id, submission_day) closes the race the
	// pre-check above cannot: a concurrent duplicate fails here instead.
	if err := cc.DB.Create(&submission).Error; err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "You already submitted a checklist today",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create checklist",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Checklist submitted successfully",
		"checklist": submission,
	})
}

// CheckToday reports whether the caller already submitted a checklist on the
// current UTC day.
// GET /api/checklists/today
func (cc *ChecklistController) CheckToday(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	exists, submission, err := Models.HasSubmittedToday(cc.DB, user.ID, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check today's submissions",
		})
	}

	response := fiber.Map{"submitted": exists}
	if submission != nil {
		response["checklist"] = submission
	}
	return c.JSON(response)
}

// VehicleConflict warns when another driver already checked the vehicle today.
// GET /api/checklists/vehicle/:vehicleId/today
func (cc *ChecklistController) VehicleConflict(c *fiber.Ctx) error {
	vehicleID, err := strconv.Atoi(c.Params("vehicleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid vehicle ID",
		})
	}

	var vehicle Models.Vehicle
	if err := cc.DB.First(&vehicle, vehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Vehicle not found",
		})
	}

	conflict, submission, err := Models.VehicleConflictToday(cc.DB, vehicle.ID, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check vehicle submissions",
		})
	}

	response := fiber.Map{"conflict": conflict}
	if submission != nil {
		response["driver_name"] = submission.DriverName
		response["submitted_at"] = submission.SubmittedAt
	}
	return c.JSON(response)
}

// GetChecklists lists submissions. Drivers only see their own; managers and
// administrators can filter by driver, vehicle, and date range.
// GET /api/checklists
func (cc *ChecklistController) GetChecklists(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	query := cc.DB.Model(&Models.ChecklistSubmission{})

	if !user.IsElevated() {
		query = query.Where("driver_id = ?", user.ID)
	} else {
		if driverID := c.Query("driver_id"); driverID != "" {
			query = query.Where("driver_id = ?", driverID)
		}
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("submission_day >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("submission_day <= ?", endDate)
	}

	var submissions []Models.ChecklistSubmission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch checklists",
		})
	}

	return c.JSON(fiber.Map{
		"checklists": submissions,
		"total":      len(submissions),
	})
}

// GetChecklist returns one submission.
// GET /api/checklists/:id
func (cc *ChecklistController) GetChecklist(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	var submission Models.ChecklistSubmission
	if err := cc.DB.First(&submission, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Checklist not found",
		})
	}

	if submission.DriverID != user.ID && !user.IsElevated() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to view this checklist",
		})
	}

	return c.JSON(submission)
}

// UpdateChecklist overwrites the mutable fields of a submission. Only the
// original driver or an elevated role may edit; the submitted flag, the
// driver, and the day it was recorded on never change.
// PUT /api/checklists/:id
func (cc *ChecklistController) UpdateChecklist(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	var submission Models.ChecklistSubmission
	if err := cc.DB.First(&submission, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Checklist not found",
		})
	}

	if submission.DriverID != user.ID && !user.IsElevated() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to edit this checklist",
		})
	}

	var req ChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.OdometerReading != nil {
		if *req.OdometerReading < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Odometer reading must be non-negative",
			})
		}
		submission.OdometerReading = *req.OdometerReading
	}
	submission.TiresOK = req.TiresOK
	submission.LightsOK = req.LightsOK
	submission.BrakesOK = req.BrakesOK
	submission.OilLevelOK = req.OilLevelOK
	submission.WaterLevelOK = req.WaterLevelOK
	submission.CleanlinessOK = req.CleanlinessOK
	if req.Notes != "" {
		submission.Notes = strings.TrimSpace(req.Notes)
	}
	if req.ImageRefs != nil {
		imageRefs, err := encodeImageRefs(req.ImageRefs)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid image references",
			})
		}
		submission.ImageRefs = imageRefs
	}

	if err := cc.DB.Save(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update checklist",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Checklist updated successfully",
		"checklist": submission,
	})
}

// DeleteChecklist hard-deletes a submission. Admin only.
// DELETE /api/checklists/:id
func (cc *ChecklistController) DeleteChecklist(c *fiber.Ctx) error {
	var submission Models.ChecklistSubmission
	if err := cc.DB.First(&submission, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Checklist not found",
		})
	}

	if err := cc.DB.Unscoped().Delete(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete checklist",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Checklist deleted successfully",
	})
}

func encodeImageRefs(refs []string) (datatypes.JSON, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	if len(refs) > Models.MaxChecklistImages {
		refs = refs[:Models.MaxChecklistImages]
	}
	encoded, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}
