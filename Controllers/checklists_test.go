package Controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerChecklistRoutes(app *fiber.App, controller *ChecklistController) {
	app.Post("/api/checklists", controller.CreateChecklist)
	app.Get("/api/checklists", controller.GetChecklists)
	app.Get("/api/checklists/today", controller.CheckToday)
	app.Get("/api/checklists/vehicle/:vehicleId/today", controller.VehicleConflict)
	app.Get("/api/checklists/:id", controller.GetChecklist)
	app.Put("/api/checklists/:id", controller.UpdateChecklist)
}

func checklistBody(vehicleID uint) map[string]interface{} {
	odometer := int64(120000)
	return map[string]interface{}{
		"vehicle_id":       vehicleID,
		"odometer_reading": odometer,
		"tires_ok":         true,
		"lights_ok":        true,
		"brakes_ok":        true,
		"oil_level_ok":     true,
		"water_level_ok":   true,
		"cleanliness_ok":   false,
		"notes":            "Left mirror cracked",
	}
}

func TestCreateChecklist(t *testing.T) {
	db := setupTestDB(t)
	driver := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	app := newTestApp(driver)
	controller := NewChecklistController(db)
	registerChecklistRoutes(app, controller)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(vehicle.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	checklist := body["checklist"].(map[string]interface{})
	assert.Equal(t, "ABC-1234", checklist["plate_number"])
	assert.Equal(t, "Ana", checklist["driver_name"])
	assert.Equal(t, true, checklist["submitted"])
	assert.NotEmpty(t, checklist["submission_day"])
}

func TestCreateChecklistDuplicateSameDay(t *testing.T) {
	db := setupTestDB(t)
	driver := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	app := newTestApp(driver)
	controller := NewChecklistController(db)
	registerChecklistRoutes(app, controller)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(vehicle.ID)))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Second submission the same day is rejected even for another vehicle.
	other := createVehicle(t, db, "DEF-5678")
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(other.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateChecklistVehicleNotFound(t *testing.T) {
	db := setupTestDB(t)
	driver := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)

	app := newTestApp(driver)
	controller := NewChecklistController(db)
	registerChecklistRoutes(app, controller)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(999)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateChecklistMissingOdometer(t *testing.T) {
	db := setupTestDB(t)
	driver := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	app := newTestApp(driver)
	controller := NewChecklistController(db)
	registerChecklistRoutes(app, controller)

	body := checklistBody(vehicle.ID)
	delete(body, "odometer_reading")
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckToday(t *testing.T) {
	db := setupTestDB(t)
	driver := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	app := newTestApp(driver)
	controller := NewChecklistController(db)
	registerChecklistRoutes(app, controller)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/checklists/today", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["submitted"])

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(vehicle.ID)))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/checklists/today", nil))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["submitted"])
	assert.NotNil(t, body["checklist"])
}

func TestVehicleConflictNamesOtherDriver(t *testing.T) {
	db := setupTestDB(t)
	driverA := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	driverB := createUser(t, db, "Bruno", "bruno@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	appA := newTestApp(driverA)
	controller := NewChecklistController(db)
	registerChecklistRoutes(appA, controller)

	resp, err := appA.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(vehicle.ID)))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Driver B checking the same vehicle sees who already submitted.
	appB := newTestApp(driverB)
	registerChecklistRoutes(appB, controller)

	target := fmt.Sprintf("/api/checklists/vehicle/%d/today", vehicle.ID)
	resp, err = appB.Test(jsonRequest(t, http.MethodGet, target, nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["conflict"])
	assert.Equal(t, "Ana", body["driver_name"])

	// And can still submit: the daily guard is keyed on the driver.
	resp, err = appB.Test(jsonRequest(t, http.MethodPost, "/api/checklists", checklistBody(vehicle.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetChecklistsDriverSeesOnlyOwn(t *testing.T) {
	db := setupTestDB(t)
	driverA := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	driverB := createUser(t, db, "Bruno", "bruno@frota.test", Models.PermissionDriver)
	manager := createUser(t, db, "Carla", "carla@frota.test", Models.PermissionManager)
	vehicle := createVehicle(t, db, "ABC-1234")

	seed := func(driver Models.User, when time.Time) {
		submission := Models.ChecklistSubmission{
			VehicleID:   vehicle.ID,
			DriverID:    driver.ID,
			DriverName:  driver.Name,
			SubmittedAt: when,
			Submitted:   true,
		}
		require.NoError(t, db.Create(&submission).Error)
	}
	seed(driverA, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	seed(driverB, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	controller := NewChecklistController(db)

	appA := newTestApp(driverA)
	registerChecklistRoutes(appA, controller)
	resp, err := appA.Test(jsonRequest(t, http.MethodGet, "/api/checklists", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])

	appM := newTestApp(manager)
	registerChecklistRoutes(appM, controller)
	resp, err = appM.Test(jsonRequest(t, http.MethodGet, "/api/checklists", nil))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total"])

	// Managers can narrow by driver.
	target := fmt.Sprintf("/api/checklists?driver_id=%d", driverB.ID)
	resp, err = appM.Test(jsonRequest(t, http.MethodGet, target, nil))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
}

func TestUpdateChecklistForbiddenForOtherDriver(t *testing.T) {
	db := setupTestDB(t)
	driverA := createUser(t, db, "Ana", "ana@frota.test", Models.PermissionDriver)
	driverB := createUser(t, db, "Bruno", "bruno@frota.test", Models.PermissionDriver)
	vehicle := createVehicle(t, db, "ABC-1234")

	submission := Models.ChecklistSubmission{
		VehicleID:   vehicle.ID,
		DriverID:    driverA.ID,
		DriverName:  driverA.Name,
		SubmittedAt: time.Now().UTC(),
		Submitted:   true,
	}
	require.NoError(t, db.Create(&submission).Error)

	controller := NewChecklistController(db)
	appB := newTestApp(driverB)
	registerChecklistRoutes(appB, controller)

	target := fmt.Sprintf("/api/checklists/%d", submission.ID)
	resp, err := appB.Test(jsonRequest(t, http.MethodPut, target, checklistBody(vehicle.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = appB.Test(jsonRequest(t, http.MethodGet, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
