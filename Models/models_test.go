package Models

import (
	"testing"

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
		&User{},
		&Vehicle{},
		&FCMToken{},
		&ChecklistSubmission{},
		&MaintenanceRequest{},
		&AuditLog{},
	))
	require.NoError(t, SetupChecklistIndexes(db))
	return db
}

func createTestVehicle(t *testing.T, db *gorm.DB, plate string) Vehicle {
	t.Helper()
	vehicle := Vehicle{
		PlateNumber: plate,
		Brand:       "Volvo",
		VehicleType: "Truck",
		Year:        2022,
		Active:      true,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func createTestDriver(t *testing.T, db *gorm.DB, name, email string) User {
	t.Helper()
	user := User{
		Name:       name,
		Email:      email,
		Password:   []byte("hash"),
		Permission: PermissionDriver,
		IsApproved: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
