package Models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	PlateNumber string `json:"plate_number" gorm:"size:50;uniqueIndex;not null"`
	Brand       string `json:"brand" gorm:"size:100"`
	VehicleType string `json:"vehicle_type" gorm:"size:100"`
	Year        int    `json:"year"`
	Odometer    int64  `json:"odometer"`
	Active      bool   `json:"active" gorm:"default:true"`

	LicenseExpirationDate    *time.Time `json:"license_expiration_date"`
	InspectionExpirationDate *time.Time `json:"inspection_expiration_date"`
}

// ExpiringDocuments returns the vehicles whose license or inspection expires
// within the given number of days. Used by the daily compliance job.
func ExpiringDocuments(db *gorm.DB, days int) ([]Vehicle, error) {
	deadline := time.Now().UTC().AddDate(0, 0, days)

	var vehicles []Vehicle
	err := db.Where("active = ?", true).
		Where("(license_expiration_date IS NOT NULL AND license_expiration_date <= ?) OR (inspection_expiration_date IS NOT NULL AND inspection_expiration_date <= ?)",
			deadline, deadline).
		Find(&vehicles).Error
	return vehicles, err
}
