package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Frota/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Models.User{},
		&Models.Vehicle{},
		&Models.FCMToken{},
		&Models.ChecklistSubmission{},
		&Models.MaintenanceRequest{},
		&Models.AuditLog{},
	))
	require.NoError(t, Models.SetupChecklistIndexes(db))
	return db
}

// newTestApp builds a fiber app that authenticates every request as the
// given user, standing in for the jwt middleware.
func newTestApp(user Models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})
	return app
}

func createVehicle(t *testing.T, db *gorm.DB, plate string) Models.Vehicle {
	t.Helper()
	vehicle := Models.Vehicle{
		PlateNumber: plate,
		Brand:       "Scania",
		VehicleType: "Truck",
		Year:        2023,
		Active:      true,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func createUser(t *testing.T, db *gorm.DB, name, email string, permission int) Models.User {
	t.Helper()
	user := Models.User{
		Name:       name,
		Email:      email,
		Password:   []byte("hash"),
		Permission: permission,
		IsApproved: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
