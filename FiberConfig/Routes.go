package FiberConfig

import (
	"fmt"
	"os"

	"Frota/Controllers"
	"Frota/Models"
	"Frota/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	vehicleController := Controllers.NewVehicleController(db)
	checklistController := Controllers.NewChecklistController(db)
	maintenanceController := Controllers.NewMaintenanceController(db)
	dashboardController := Controllers.NewDashboardController(db)
	reportController := Controllers.NewReportController(db)

	// Auth and user administration
	app.Post("/api/Login", Controllers.Login)
	app.Get("/api/validate-token", Controllers.ValidateToken)
	app.Use("/api/User", middleware.Verify(Models.PermissionDriver), Controllers.User)
	app.Use("/api/Logout", Controllers.Logout)
	app.Post("/api/RegisterUser", middleware.Verify(Models.PermissionAdmin), Controllers.RegisterUser)
	app.Patch("/api/UpdateUser", middleware.Verify(Models.PermissionAdmin), Controllers.UpdateUser)
	app.Get("/api/FetchUsers", middleware.Verify(Models.PermissionAdmin), Controllers.FetchUsers)
	app.Delete("/api/DeleteUser", middleware.Verify(Models.PermissionAdmin), Controllers.DeleteUser)
	app.Post("/api/UpdateToken", Models.UpdateToken)

	api := app.Group("/api")

	// Vehicle routes
	vehicles := api.Group("/vehicles", middleware.Verify(Models.PermissionDriver))
	vehicles.Get("/", vehicleController.GetVehicles)
	vehicles.Get("/:id", vehicleController.GetVehicle)
	vehicles.Post("/", middleware.Verify(Models.PermissionManager), vehicleController.CreateVehicle)
	vehicles.Put("/:id", middleware.Verify(Models.PermissionManager), vehicleController.UpdateVehicle)
	vehicles.Delete("/:id", middleware.Verify(Models.PermissionAdmin), vehicleController.DeleteVehicle)

	// Checklist routes
	checklists := api.Group("/checklists", middleware.Verify(Models.PermissionDriver))
	checklists.Get("/", checklistController.GetChecklists)
	checklists.Get("/today", checklistController.CheckToday)
	checklists.Get("/vehicle/:vehicleId/today", checklistController.VehicleConflict)
	checklists.Post("/", checklistController.CreateChecklist)
	checklists.Get("/:id", checklistController.GetChecklist)
	checklists.Put("/:id", checklistController.UpdateChecklist)
	checklists.Delete("/:id", middleware.Verify(Models.PermissionAdmin), checklistController.DeleteChecklist)

	// Maintenance routes
	maintenance := api.Group("/maintenance", middleware.Verify(Models.PermissionDriver))
	maintenance.Get("/", maintenanceController.GetRequests)
	maintenance.Post("/", maintenanceController.CreateRequest)
	maintenance.Get("/:id", maintenanceController.GetRequest)
	maintenance.Post("/:id/advance", middleware.Verify(Models.PermissionManager), maintenanceController.AdvanceRequest)
	maintenance.Patch("/:id/cost", middleware.Verify(Models.PermissionManager), maintenanceController.UpdateCost)
	maintenance.Delete("/:id", middleware.Verify(Models.PermissionAdmin), maintenanceController.DeleteRequest)

	// Dashboard and reports
	app.Get("/api/stats/widget-data", middleware.Verify(Models.PermissionManager), dashboardController.GetWidgetData)
	reports := api.Group("/reports", middleware.Verify(Models.PermissionManager))
	reports.Get("/checklists", reportController.ExportChecklists)
	reports.Get("/maintenance", reportController.ExportMaintenance)

	// Logs API routes
	app.Get("/api/logs", middleware.Verify(Models.PermissionAdmin), Controllers.GetLogs)
	app.Get("/api/logs/stats", middleware.Verify(Models.PermissionAdmin), Controllers.GetLogStats)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.AuditLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	// Serve checklist photos
	app.Static("/ChecklistImages", "./ChecklistImages", fiber.Static{Compress: true})

	port := os.Getenv("FROTA_PORT")
	if port == "" {
		port = ":3001"
	}
	app.Listen(port)
}
