package Models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Maintenance request kinds
const (
	KindPreventive = "Preventive"
	KindCorrective = "Corrective"
	KindEmergency  = "Emergency"
)

// Priority levels
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Workflow statuses, in order. A request only ever moves forward, one step
// at a time, and never leaves Finalized.
const (
	StatusRequested     = "Requested"
	StatusApproved      = "Approved"
	StatusSentToERP     = "SentToERP"
	StatusProcessingERP = "ProcessingERP"
	StatusOrderCreated  = "OrderCreated"
	StatusInExecution   = "InExecution"
	StatusFinalized     = "Finalized"
)

// StatusSequence is the single source of truth for the workflow order.
var StatusSequence = []string{
	StatusRequested,
	StatusApproved,
	StatusSentToERP,
	StatusProcessingERP,
	StatusOrderCreated,
	StatusInExecution,
	StatusFinalized,
}

// statusProgress maps each status to a display completion percentage.
var statusProgress = map[string]int{
	StatusRequested:     10,
	StatusApproved:      25,
	StatusSentToERP:     40,
	StatusProcessingERP: 55,
	StatusOrderCreated:  70,
	StatusInExecution:   85,
	StatusFinalized:     100,
}

// DefaultSupplier is the supplier label stamped when an order is first created.
const DefaultSupplier = "Default Supplier"

var (
	ErrRequestNotFound  = errors.New("maintenance request not found")
	ErrAlreadyFinalized = errors.New("maintenance request already finalized")
	ErrConcurrentUpdate = errors.New("maintenance request modified concurrently")
)

type MaintenanceRequest struct {
	gorm.Model
	VehicleID   uint   `json:"vehicle_id" gorm:"not null;index"`
	PlateNumber string `json:"plate_number" gorm:"size:50"`

	Kind        string `json:"kind" gorm:"size:20;not null"`
	Priority    string `json:"priority" gorm:"size:20;not null"`
	Description string `json:"description" gorm:"type:text"`

	OdometerAtCreation *int64   `json:"odometer_at_creation"`
	Cost               *float64 `json:"cost"`

	Status            string `json:"status" gorm:"size:20;not null;default:'Requested';index"`
	OrderReference    string `json:"order_reference" gorm:"size:50"`
	SupplierReference string `json:"supplier_reference" gorm:"size:255"`

	RequestedByID   uint   `json:"requested_by_id" gorm:"index"`
	RequestedByName string `json:"requested_by_name" gorm:"size:255"`
}

// NextStatus returns the successor of the given status in StatusSequence.
// The second return is false when the status is terminal or unknown.
func NextStatus(current string) (string, bool) {
	for i, s := range StatusSequence {
		if s == current && i+1 < len(StatusSequence) {
			return StatusSequence[i+1], true
		}
	}
	return "", false
}

// StatusProgress returns the completion percentage shown for a status.
// Unknown statuses report 0.
func StatusProgress(status string) int {
	return statusProgress[status]
}

func IsValidKind(kind string) bool {
	return kind == KindPreventive || kind == KindCorrective || kind == KindEmergency
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NewOrderReference builds an order reference from the current year and a
// random numeric suffix, e.g. "OS-2026-483920".
func NewOrderReference() string {
	return fmt.Sprintf("OS-%d-%06d", time.Now().UTC().Year(), rand.Intn(1000000))
}

// AdvanceMaintenance moves a request exactly one step forward in
// StatusSequence. Entering OrderCreated stamps the order and supplier
// references once; later advances leave them untouched.
//
// The status change is a conditional update keyed on the status that was
// read, so two concurrent advances cannot both step the same request: the
// loser sees zero affected rows and gets ErrConcurrentUpdate.
func AdvanceMaintenance(db *gorm.DB, id uint) (*MaintenanceRequest, error) {
	var request MaintenanceRequest
	if err := db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	next, ok := NextStatus(request.Status)
	if !ok {
		return nil, ErrAlreadyFinalized
	}

	updates := map[string]interface{}{"status": next}
	if next == StatusOrderCreated && request.OrderReference == "" {
		updates["order_reference"] = NewOrderReference()
		updates["supplier_reference"] = DefaultSupplier
	}

	result := db.Model(&MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, request.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentUpdate
	}

	if err := db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
