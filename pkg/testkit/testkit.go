// Package testkit provides the in-memory database and fixture builders the
// service tests run against.
//
//	db := testkit.NewTestDB(t)
//	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
//	    v.DailyPrice = 180
//	})
package testkit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/luxewheels/app/models"
)

// NewTestDB opens a private in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq++
	// A named shared-cache memory DB keeps the pool's connections on the
	// same database while staying private to this test.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", seq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open test database")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Reservation{},
	), "migrate test schema")

	return db
}

// Date builds a midnight UTC time from year, month, day. Booking and
// maintenance dates are stored date-only, so tests build them the same way.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date for the nullable maintenance columns.
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}

// ─── Fixtures ────────────────────────────────────────────────────────────────

var seq int

// SeedVehicle inserts a vehicle with sensible defaults, letting each test
// override only the fields it cares about.
func SeedVehicle(t *testing.T, db *gorm.DB, overrides ...func(*models.Vehicle)) *models.Vehicle {
	t.Helper()
	seq++

	recent := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 6, 0)
	v := &models.Vehicle{
		ModelName:       fmt.Sprintf("Model %d", seq),
		Brand:           "BMW",
		Year:            2023,
		DailyPrice:      120,
		Available:       true,
		Seats:           5,
		Category:        models.CategorySilver,
		LastServicedAt:  &recent,
		NextServiceAt:   &future,
		LastInspectedAt: &recent,
	}
	for _, fn := range overrides {
		fn(v)
	}
	require.NoError(t, db.Create(v).Error, "seed vehicle")
	return v
}

// SeedUser inserts a user, default tier Economy.
func SeedUser(t *testing.T, db *gorm.DB, overrides ...func(*models.User)) *models.User {
	t.Helper()
	seq++

	u := &models.User{
		Name:  fmt.Sprintf("User %d", seq),
		Email: fmt.Sprintf("user%d@example.com", seq),
		Phone: "912345678",
		Tier:  models.CategoryEconomy,
	}
	for _, fn := range overrides {
		fn(u)
	}
	require.NoError(t, db.Create(u).Error, "seed user")
	return u
}

// SeedReservation inserts a reservation linking user and vehicle.
func SeedReservation(t *testing.T, db *gorm.DB, user *models.User, vehicle *models.Vehicle, overrides ...func(*models.Reservation)) *models.Reservation {
	t.Helper()

	r := &models.Reservation{
		UserID:        user.ID,
		VehicleID:     vehicle.ID,
		StartDate:     Date(2026, time.June, 1),
		EndDate:       Date(2026, time.June, 5),
		TotalPrice:    4 * vehicle.DailyPrice,
		Status:        models.ReservationPending,
		PaymentMethod: "Card",
		PaymentStatus: models.PaymentPending,
		Name:          user.Name,
		Phone:         user.Phone,
		Email:         user.Email,
		NationalID:    "12345678",
		PostalCode:    "4000-123",
	}
	for _, fn := range overrides {
		fn(r)
	}
	require.NoError(t, db.Create(r).Error, "seed reservation")
	return r
}
