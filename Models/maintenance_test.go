package Models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusSequence(t *testing.T) {
	expected := []string{
		StatusRequested,
		StatusApproved,
		StatusSentToERP,
		StatusProcessingERP,
		StatusOrderCreated,
		StatusInExecution,
		StatusFinalized,
	}
	assert.Equal(t, expected, StatusSequence)

	for i := 0; i < len(expected)-1; i++ {
		next, ok := NextStatus(expected[i])
		assert.True(t, ok, "expected a successor for %s", expected[i])
		assert.Equal(t, expected[i+1], next)
	}

	_, ok := NextStatus(StatusFinalized)
	assert.False(t, ok, "Finalized must have no successor")

	_, ok = NextStatus("Cancelled")
	assert.False(t, ok, "unknown statuses must have no successor")
}

func TestStatusProgress(t *testing.T) {
	cases := map[string]int{
		StatusRequested:     10,
		StatusApproved:      25,
		StatusSentToERP:     40,
		StatusProcessingERP: 55,
		StatusOrderCreated:  70,
		StatusInExecution:   85,
		StatusFinalized:     100,
	}
	for status, want := range cases {
		assert.Equal(t, want, StatusProgress(status), "progress for %s", status)
	}
	assert.Equal(t, 0, StatusProgress("Unknown"))
}

func TestAdvanceMaintenanceFullWorkflow(t *testing.T) {
	db := setupTestDB(t)
	vehicle := createTestVehicle(t, db, "ABC-1234")

	request := MaintenanceRequest{
		VehicleID:   vehicle.ID,
		PlateNumber: vehicle.PlateNumber,
		Kind:        KindCorrective,
		Priority:    PriorityHigh,
		Description: "Brake pads worn",
		Status:      StatusRequested,
	}
	require.NoError(t, db.Create(&request).Error)

	for i := 1; i < len(StatusSequence); i++ {
		advanced, err := AdvanceMaintenance(db, request.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusSequence[i], advanced.Status)
		assert.Equal(t, StatusProgress(StatusSequence[i]), StatusProgress(advanced.Status))
	}

	// Finalized requests stay finalized.
	_, err := AdvanceMaintenance(db, request.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	var stored MaintenanceRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, StatusFinalized, stored.Status)
}

func TestAdvanceMaintenanceStampsOrderReferenceOnce(t *testing.T) {
	db := setupTestDB(t)
	vehicle := createTestVehicle(t, db, "DEF-5678")

	request := MaintenanceRequest{
		VehicleID:   vehicle.ID,
		PlateNumber: vehicle.PlateNumber,
		Kind:        KindPreventive,
		Priority:    PriorityLow,
		Status:      StatusRequested,
	}
	require.NoError(t, db.Create(&request).Error)

	// Requested -> Approved -> SentToERP -> ProcessingERP: no reference yet.
	for i := 0; i < 3; i++ {
		advanced, err := AdvanceMaintenance(db, request.ID)
		require.NoError(t, err)
		assert.Empty(t, advanced.OrderReference)
		assert.Empty(t, advanced.SupplierReference)
	}

	// Entering OrderCreated stamps the reference and supplier.
	advanced, err := AdvanceMaintenance(db, request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOrderCreated, advanced.Status)
	assert.NotEmpty(t, advanced.OrderReference)
	assert.Equal(t, DefaultSupplier, advanced.SupplierReference)

	reference := advanced.OrderReference

	// The reference never changes on later transitions.
	for i := 0; i < 2; i++ {
		advanced, err = AdvanceMaintenance(db, request.ID)
		require.NoError(t, err)
		assert.Equal(t, reference, advanced.OrderReference)
	}
	assert.Equal(t, StatusFinalized, advanced.Status)
}

func TestAdvanceMaintenanceNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := AdvanceMaintenance(db, 999)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestAdvanceMaintenanceConcurrentUpdate(t *testing.T) {
	db := setupTestDB(t)
	vehicle := createTestVehicle(t, db, "GHI-9012")

	request := MaintenanceRequest{
		VehicleID:   vehicle.ID,
		PlateNumber: vehicle.PlateNumber,
		Kind:        KindEmergency,
		Priority:    PriorityUrgent,
		Status:      StatusRequested,
	}
	require.NoError(t, db.Create(&request).Error)

	// Simulate another actor moving the request between the read and the
	// conditional update by changing the stored status out of band.
	require.NoError(t, db.Model(&MaintenanceRequest{}).
		Where("id = ?", request.ID).
		Update("status", StatusApproved).Error)

	var stale MaintenanceRequest
	require.NoError(t, db.First(&stale, request.ID).Error)

	result := db.Model(&MaintenanceRequest{}).
		Where("id = ? AND status = ?", request.ID, StatusRequested).
		Update("status", StatusApproved)
	require.NoError(t, result.Error)
	assert.Equal(t, int64(0), result.RowsAffected, "stale status must not match")

	// AdvanceMaintenance itself still works from the fresh state.
	advanced, err := AdvanceMaintenance(db, request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSentToERP, advanced.Status)
}

func TestNewOrderReferenceFormat(t *testing.T) {
	reference := NewOrderReference()
	assert.True(t, strings.HasPrefix(reference, "OS-"), "reference %q", reference)

	parts := strings.Split(reference, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[1], 4, "year part")
	assert.Len(t, parts[2], 6, "random suffix is zero-padded")
}

func TestKindAndPriorityValidation(t *testing.T) {
	assert.True(t, IsValidKind(KindPreventive))
	assert.True(t, IsValidKind(KindCorrective))
	assert.True(t, IsValidKind(KindEmergency))
	assert.False(t, IsValidKind("Cosmetic"))

	assert.True(t, IsValidPriority(PriorityLow))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.True(t, IsValidPriority(PriorityUrgent))
	assert.False(t, IsValidPriority("Whenever"))
}
