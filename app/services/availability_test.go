package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/services"
	"github.com/shashiranjanraj/luxewheels/pkg/storage"
	"github.com/shashiranjanraj/luxewheels/pkg/testkit"
)

var today = testkit.Date(2026, time.June, 15)

func TestResolveExpiredInspectionWinsOverRental(t *testing.T) {
	car := models.Vehicle{
		LastInspectedAt: testkit.DatePtr(2024, time.January, 1),
	}
	booked := []models.Reservation{{
		StartDate: today,
		EndDate:   today.AddDate(0, 0, 3),
		Status:    models.ReservationPending,
	}}

	available, reason := services.Resolve(car, booked, today)
	assert.False(t, available)
	assert.Equal(t, models.StatusLabelMaintenance, reason)
}

func TestResolveOverdueService(t *testing.T) {
	car := models.Vehicle{
		NextServiceAt: testkit.DatePtr(2026, time.June, 14),
	}
	available, reason := services.Resolve(car, nil, today)
	assert.False(t, available)
	assert.Equal(t, models.StatusLabelMaintenance, reason)

	// Service due today is not overdue yet.
	car.NextServiceAt = testkit.DatePtr(2026, time.June, 15)
	available, _ = services.Resolve(car, nil, today)
	assert.True(t, available)
}

func TestResolveActiveReservation(t *testing.T) {
	res := models.Reservation{
		StartDate: testkit.Date(2026, time.June, 10),
		EndDate:   testkit.Date(2026, time.June, 20),
		Status:    models.ReservationPending,
	}

	available, reason := services.Resolve(models.Vehicle{}, []models.Reservation{res}, today)
	assert.False(t, available)
	assert.Equal(t, models.StatusLabelRented, reason)

	// A cancelled reservation never blocks.
	res.Status = models.ReservationCancelled
	available, _ = services.Resolve(models.Vehicle{}, []models.Reservation{res}, today)
	assert.True(t, available)

	// Ending yesterday frees the vehicle; ending today still blocks.
	res.Status = models.ReservationAltered
	res.EndDate = testkit.Date(2026, time.June, 14)
	available, _ = services.Resolve(models.Vehicle{}, []models.Reservation{res}, today)
	assert.True(t, available)

	res.EndDate = today
	available, _ = services.Resolve(models.Vehicle{}, []models.Reservation{res}, today)
	assert.False(t, available)
}

func TestResolveNoDatesNoReservations(t *testing.T) {
	available, reason := services.Resolve(models.Vehicle{}, nil, today)
	assert.True(t, available)
	assert.Equal(t, models.StatusLabelAvailable, reason)
}

func TestCategorizeThresholds(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{50, models.CategoryEconomy},
		{100, models.CategoryEconomy},
		{100.01, models.CategorySilver},
		{150, models.CategorySilver},
		{150.01, models.CategoryGold},
		{400, models.CategoryGold},
	}
	for _, c := range cases {
		got := services.Categorize(models.Vehicle{DailyPrice: c.price})
		assert.Equal(t, c.want, got, "price %.2f", c.price)
	}
}

func TestCategorizeKeepsExplicitCategory(t *testing.T) {
	car := models.Vehicle{DailyPrice: 60, Category: models.CategoryGold}
	assert.Equal(t, models.CategoryGold, services.Categorize(car))

	// Whitespace counts as blank.
	car.Category = "   "
	assert.Equal(t, models.CategoryEconomy, services.Categorize(car))
}

func TestRefreshAppliesAndIsIdempotent(t *testing.T) {
	db := testkit.NewTestDB(t)
	fleet := services.NewFleetService(db)

	// Stored as available but the service date has passed.
	overdue := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.NextServiceAt = testkit.DatePtr(2026, time.June, 1)
	})
	// Stored as unavailable but nothing blocks it anymore.
	stale := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.Available = false
	})
	// Blank category on a premium car.
	blank := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.DailyPrice = 250
		v.Category = ""
	})

	summary, err := fleet.Refresh(today)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Vehicles)
	assert.Equal(t, 2, summary.AvailabilityWrites)
	assert.Equal(t, 1, summary.CategoryWrites)

	var got models.Vehicle
	require.NoError(t, db.First(&got, overdue.ID).Error)
	assert.False(t, got.Available)

	got = models.Vehicle{}
	require.NoError(t, db.First(&got, stale.ID).Error)
	assert.True(t, got.Available)

	got = models.Vehicle{}
	require.NoError(t, db.First(&got, blank.ID).Error)
	assert.Equal(t, models.CategoryGold, got.Category)

	// Second pass over unchanged data writes nothing.
	summary, err = fleet.Refresh(today)
	require.NoError(t, err)
	assert.Zero(t, summary.AvailabilityWrites)
	assert.Zero(t, summary.CategoryWrites)
}

func TestRefreshSeesOpenReservations(t *testing.T) {
	db := testkit.NewTestDB(t)
	fleet := services.NewFleetService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)
	testkit.SeedReservation(t, db, user, car, func(r *models.Reservation) {
		r.StartDate = testkit.Date(2026, time.June, 10)
		r.EndDate = testkit.Date(2026, time.June, 20)
	})

	_, err := fleet.Refresh(today)
	require.NoError(t, err)

	var got models.Vehicle
	require.NoError(t, db.First(&got, car.ID).Error)
	assert.False(t, got.Available)

	// Once the booking is in the past the vehicle comes back.
	_, err = fleet.Refresh(testkit.Date(2026, time.June, 21))
	require.NoError(t, err)
	require.NoError(t, db.First(&got, car.ID).Error)
	assert.True(t, got.Available)
}

func TestVehicleStatusLabel(t *testing.T) {
	car := models.Vehicle{Available: true}
	assert.Equal(t, models.StatusLabelAvailable, car.StatusLabel(today))

	car.Available = false
	assert.Equal(t, models.StatusLabelRented, car.StatusLabel(today))

	// Maintenance rules trump the stored flag.
	car.Available = true
	car.LastInspectedAt = testkit.DatePtr(2024, time.January, 1)
	assert.Equal(t, models.StatusLabelMaintenance, car.StatusLabel(today))
}

func TestAttachPhotoStoresAndLinks(t *testing.T) {
	db := testkit.NewTestDB(t)
	storage.RegisterDisk("local", storage.NewLocalDisk(t.TempDir(), "/storage"))
	fleet := services.NewFleetService(db)
	car := testkit.SeedVehicle(t, db)

	url, err := fleet.AttachPhoto(car.ID, "front.PNG", []byte("front view"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("/storage/vehicles/%d.png", car.ID), url)

	var stored models.Vehicle
	require.NoError(t, db.First(&stored, car.ID).Error)
	assert.Equal(t, fmt.Sprintf("vehicles/%d.png", car.ID), stored.Photo)
	assert.Equal(t, url, fleet.PhotoURL(stored))

	data, err := storage.Get(stored.Photo)
	require.NoError(t, err)
	assert.Equal(t, []byte("front view"), data)
}

func TestAttachPhotoDefaultsToJPEG(t *testing.T) {
	db := testkit.NewTestDB(t)
	storage.RegisterDisk("local", storage.NewLocalDisk(t.TempDir(), "/storage"))
	fleet := services.NewFleetService(db)
	car := testkit.SeedVehicle(t, db)

	url, err := fleet.AttachPhoto(car.ID, "front", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("/storage/vehicles/%d.jpg", car.ID), url)
}

func TestAttachPhotoUnknownVehicle(t *testing.T) {
	db := testkit.NewTestDB(t)
	storage.RegisterDisk("local", storage.NewLocalDisk(t.TempDir(), "/storage"))
	fleet := services.NewFleetService(db)

	_, err := fleet.AttachPhoto(9999, "front.jpg", nil)
	assert.ErrorIs(t, err, services.ErrVehicleNotFound)
}
