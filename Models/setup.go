package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("FROTA_DB_PATH")
	if path == "" {
		path = "frota.db"
	}

	connection, err := gorm.Open(sqlite.Open(path))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// Base tables first, then everything referencing them.
	DB.AutoMigrate(
		&User{},
		&Vehicle{},
		&FCMToken{},
	)
	DB.AutoMigrate(
		&ChecklistSubmission{}, // depends on User and Vehicle
		&MaintenanceRequest{},  // depends on Vehicle
		&AuditLog{},
	)

	if err := SetupChecklistIndexes(DB); err != nil {
		log.Printf("Error creating checklist indexes: %v", err)
	}

	seedDefaultAdmin()
}

// seedDefaultAdmin creates the bootstrap administrator on an empty database
// so the first login is possible. Credentials come from the environment.
func seedDefaultAdmin() {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("FROTA_ADMIN_EMAIL")
	password := os.Getenv("FROTA_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No users found and FROTA_ADMIN_EMAIL/FROTA_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := User{
		Name:       "Administrator",
		Email:      email,
		Password:   hash,
		Permission: PermissionAdmin,
		IsApproved: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}
	log.Printf("Seeded administrator account %s", email)
}
