package Controllers

import (
	"strconv"
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleController handles vehicle-related API endpoints
type VehicleController struct {
	DB *gorm.DB
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

type VehicleRequest struct {
	PlateNumber              string `json:"plate_number" validate:"required"`
	Brand                    string `json:"brand"`
	VehicleType              string `json:"vehicle_type"`
	Year                     int    `json:"year" validate:"omitempty,min=1950"`
	Odometer                 *int64 `json:"odometer" validate:"omitempty,min=0"`
	Active                   *bool  `json:"active"`
	LicenseExpirationDate    string `json:"license_expiration_date"`
	InspectionExpirationDate string `json:"inspection_expiration_date"`
}

// GetVehicles retrieves all vehicles
func (vc *VehicleController) GetVehicles(ctx *fiber.Ctx) error {
	query := vc.DB.Model(&Models.Vehicle{})
	if active := ctx.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var vehicles []Models.Vehicle
	if err := query.Order("plate_number ASC").Find(&vehicles).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve vehicles"})
	}

	return ctx.JSON(vehicles)
}

// GetVehicle retrieves a single vehicle by ID
func (vc *VehicleController) GetVehicle(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := vc.DB.First(&vehicle, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	return ctx.JSON(vehicle)
}

// CreateVehicle creates a new vehicle
func (vc *VehicleController) CreateVehicle(ctx *fiber.Ctx) error {
	var req VehicleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vehicle := Models.Vehicle{
		PlateNumber: req.PlateNumber,
		Brand:       req.Brand,
		VehicleType: req.VehicleType,
		Year:        req.Year,
		Active:      true,
	}
	if req.Odometer != nil {
		vehicle.Odometer = *req.Odometer
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}
	if expiry, err := parseDate(req.LicenseExpirationDate); err == nil {
		vehicle.LicenseExpirationDate = expiry
	}
	if expiry, err := parseDate(req.InspectionExpirationDate); err == nil {
		vehicle.InspectionExpirationDate = expiry
	}

	if err := vc.DB.Create(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A vehicle with this plate already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create vehicle",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(vehicle)
}

// UpdateVehicle updates an existing vehicle
func (vc *VehicleController) UpdateVehicle(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := vc.DB.First(&vehicle, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	var req VehicleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.PlateNumber != "" {
		vehicle.PlateNumber = req.PlateNumber
	}
	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.VehicleType != "" {
		vehicle.VehicleType = req.VehicleType
	}
	if req.Year != 0 {
		vehicle.Year = req.Year
	}
	if req.Odometer != nil {
		vehicle.Odometer = *req.Odometer
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}
	if expiry, err := parseDate(req.LicenseExpirationDate); err == nil && expiry != nil {
		vehicle.LicenseExpirationDate = expiry
	}
	if expiry, err := parseDate(req.InspectionExpirationDate); err == nil && expiry != nil {
		vehicle.InspectionExpirationDate = expiry
	}

	if err := vc.DB.Save(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A vehicle with this plate already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update vehicle",
		})
	}

	return ctx.JSON(vehicle)
}

// DeleteVehicle soft deletes a vehicle
func (vc *VehicleController) DeleteVehicle(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := vc.DB.First(&vehicle, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	vc.DB.Delete(&vehicle)

	return ctx.JSON(fiber.Map{"message": "Vehicle deleted successfully"})
}

// parseDate parses an optional YYYY-MM-DD field. Empty input yields nil.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
