package Controllers

import (
	"errors"
	"strconv"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MaintenanceController handles maintenance request endpoints
type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

type MaintenanceRequestInput struct {
	VehicleID          uint     `json:"vehicle_id" validate:"required"`
	Kind               string   `json:"kind" validate:"required"`
	Priority           string   `json:"priority" validate:"required"`
	Description        string   `json:"description"`
	OdometerAtCreation *int64   `json:"odometer_at_creation" validate:"omitempty,min=0"`
	Cost               *float64 `json:"cost" validate:"omitempty,min=0"`
}

type UpdateCostRequest struct {
	Cost *float64 `json:"cost" validate:"required,min=0"`
}

// CreateRequest opens a maintenance request. Any authenticated user.
// POST /api/maintenance
func (mc *MaintenanceController) CreateRequest(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	var req MaintenanceRequestInput
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
	if !Models.IsValidKind(req.Kind) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Kind must be Preventive, Corrective or Emergency",
		})
	}
	if !Models.IsValidPriority(req.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Priority must be Low, Medium, High or Urgent",
		})
	}

	var vehicle Models.Vehicle
	if err := mc.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Vehicle not found",
		})
	}

	request := Models.MaintenanceRequest{
		VehicleID:          vehicle.ID,
		PlateNumber:        vehicle.PlateNumber,
		Kind:               req.Kind,
		Priority:           req.Priority,
		Description:        req.Description,
		OdometerAtCreation: req.OdometerAtCreation,
		Cost:               req.Cost,
		Status:             Models.StatusRequested,
		RequestedByID:      user.ID,
		RequestedByName:    user.Name,
	}
	if err := mc.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create maintenance request",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Maintenance request created successfully",
		"data":    maintenanceResponse(request),
	})
}

// GetRequests lists maintenance requests with optional filters.
// GET /api/maintenance
func (mc *MaintenanceController) GetRequests(c *fiber.Ctx) error {
	query := mc.DB.Model(&Models.MaintenanceRequest{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var requests []Models.MaintenanceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch maintenance requests",
		})
	}

	response := make([]fiber.Map, 0, len(requests))
	for _, request := range requests {
		response = append(response, maintenanceResponse(request))
	}

	return c.JSON(fiber.Map{
		"data":  response,
		"total": len(response),
	})
}

// GetRequest returns one maintenance request.
// GET /api/maintenance/:id
func (mc *MaintenanceController) GetRequest(c *fiber.Ctx) error {
	var request Models.MaintenanceRequest
	if err := mc.DB.First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Maintenance request not found",
		})
	}

	return c.JSON(maintenanceResponse(request))
}

// AdvanceRequest moves a request one step forward in the workflow.
// POST /api/maintenance/:id/advance
func (mc *MaintenanceController) AdvanceRequest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid maintenance request ID",
		})
	}

	request, err := Models.AdvanceMaintenance(mc.DB, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, Models.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Maintenance request not found",
			})
		case errors.Is(err, Models.ErrAlreadyFinalized):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Maintenance request is already finalized",
			})
		case errors.Is(err, Models.ErrConcurrentUpdate):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Maintenance request was modified by another user, reload and retry",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to advance maintenance request",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Maintenance request advanced successfully",
		"data":    maintenanceResponse(*request),
	})
}

// UpdateCost edits the cost of a request without touching the workflow.
// PATCH /api/maintenance/:id/cost
func (mc *MaintenanceController) UpdateCost(c *fiber.Ctx) error {
	var request Models.MaintenanceRequest
	if err := mc.DB.First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Maintenance request not found",
		})
	}

	var req UpdateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cost must be a non-negative number",
		})
	}

	request.Cost = req.Cost
	if err := mc.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update cost",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Cost updated successfully",
		"data":    maintenanceResponse(request),
	})
}

// DeleteRequest removes a maintenance request. Admin only.
// DELETE /api/maintenance/:id
func (mc *MaintenanceController) DeleteRequest(c *fiber.Ctx) error {
	var request Models.MaintenanceRequest
	if err := mc.DB.First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Maintenance request not found",
		})
	}

	mc.DB.Delete(&request)

	return c.JSON(fiber.Map{
		"message": "Maintenance request deleted successfully",
	})
}

// maintenanceResponse decorates a request with its display progress.
func maintenanceResponse(request Models.MaintenanceRequest) fiber.Map {
	return fiber.Map{
		"request":  request,
		"progress": Models.StatusProgress(request.Status),
	}
}
