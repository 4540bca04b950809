package Models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxChecklistImages caps the image references stored per submission.
const MaxChecklistImages = 4

var (
	ErrChecklistNotFound  = errors.New("checklist submission not found")
	ErrDuplicateChecklist = errors.New("driver already submitted a checklist today")
)

// ChecklistSubmission is a driver's daily vehicle-condition report.
// PlateNumber and DriverName are snapshots taken at submission time so the
// record stays readable after the vehicle or user is edited.
type ChecklistSubmission struct {
	gorm.Model
	VehicleID   uint   `json:"vehicle_id" gorm:"not null;index"`
	DriverID    uint   `json:"driver_id" gorm:"not null;index"`
	PlateNumber string `json:"plate_number" gorm:"size:50"`
	DriverName  string `json:"driver_name" gorm:"size:255"`

	SubmittedAt   time.Time `json:"submitted_at" gorm:"not null"`
	SubmissionDay string    `json:"submission_day" gorm:"size:10;index"`

	OdometerReading int64 `json:"odometer_reading"`

	TiresOK       bool `json:"tires_ok"`
	LightsOK      bool `json:"lights_ok"`
	BrakesOK      bool `json:"brakes_ok"`
	OilLevelOK    bool `json:"oil_level_ok"`
	WaterLevelOK  bool `json:"water_level_ok"`
	CleanlinessOK bool `json:"cleanliness_ok"`

	Notes     string         `json:"notes" gorm:"type:text"`
	ImageRefs datatypes.JSON `json:"image_refs"`

	Submitted bool `json:"submitted" gorm:"default:false"`
}

// BeforeCreate stamps the submission time and its UTC calendar day.
// SubmissionDay backs the unique index that enforces one submitted
// checklist per driver per day.
func (c *ChecklistSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now().UTC()
	}
	if c.SubmissionDay == "" {
		c.SubmissionDay = c.SubmittedAt.UTC().Format("2006-01-02")
	}
	return nil
}

// DayBoundsUTC returns the half-open UTC calendar-day interval
// [midnight, next midnight) containing the reference instant.
func DayBoundsUTC(ref time.Time) (time.Time, time.Time) {
	utc := ref.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// HasSubmittedToday reports whether the driver already has a submitted
// checklist on the UTC day of the reference instant, returning the existing
// submission when present.
func HasSubmittedToday(db *gorm.DB, driverID uint, ref time.Time) (bool, *ChecklistSubmission, error) {
	start, end := DayBoundsUTC(ref)

	var submission ChecklistSubmission
	err := db.Where("driver_id = ? AND submitted = ? AND submitted_at >= ? AND submitted_at < ?",
		driverID, true, start, end).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, &submission, nil
}

// VehicleConflictToday reports whether any driver already submitted a
// checklist for the vehicle on the UTC day of the reference instant. The
// returned submission carries the conflicting driver's name for display.
func VehicleConflictToday(db *gorm.DB, vehicleID uint, ref time.Time) (bool, *ChecklistSubmission, error) {
	start, end := DayBoundsUTC(ref)

	var submission ChecklistSubmission
	err := db.Where("vehicle_id = ? AND submitted = ? AND submitted_at >= ? AND submitted_at < ?",
		vehicleID, true, start, end).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, &submission, nil
}

// SetupChecklistIndexes creates the partial unique index backing the one
// submitted checklist per driver per UTC day invariant. The application
// pre-check alone would race under concurrent submissions; the index makes
// the store reject the loser, which surfaces as ErrDuplicateChecklist.
func SetupChecklistIndexes(db *gorm.DB) error {
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_driver_submission_day ON checklist_submissions (driver_id, submission_day) WHERE submitted = 1 AND deleted_at IS NULL").Error
}
