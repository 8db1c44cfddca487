package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/services"
	"github.com/shashiranjanraj/luxewheels/pkg/testkit"
)

func bookingFor(user *models.User, car *models.Vehicle) services.BookingInput {
	return services.BookingInput{
		UserID:        user.ID,
		VehicleID:     car.ID,
		Name:          "Maria Silva",
		Phone:         "912345678",
		Email:         "maria@example.com",
		NationalID:    "12345678",
		PostalCode:    "4000-123",
		PaymentMethod: "Card",
		StartDate:     "2026-06-01",
		EndDate:       "2026-06-05",
	}
}

func TestBookPricesByDays(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.DailyPrice = 150 })

	res, err := rental.Book(bookingFor(user, car))
	require.NoError(t, err)

	assert.Equal(t, 4, res.BillableDays())
	assert.Equal(t, 600.0, res.TotalPrice)
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, models.PaymentPending, res.PaymentStatus)

	// The vehicle comes off the market immediately.
	var got models.Vehicle
	require.NoError(t, db.First(&got, car.ID).Error)
	assert.False(t, got.Available)
}

func TestBookSameDayBillsOneDay(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.DailyPrice = 90 })

	input := bookingFor(user, car)
	input.StartDate = "2026-06-01"
	input.EndDate = "2026-06-01"

	res, err := rental.Book(input)
	require.NoError(t, err)
	assert.Equal(t, 1, res.BillableDays())
	assert.Equal(t, 90.0, res.TotalPrice)
}

func TestBookRejectsBadInput(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)

	input := bookingFor(user, car)
	input.Email = "nope"
	input.EndDate = "someday"

	_, err := rental.Book(input)
	var verr services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "email")
	assert.Contains(t, verr, "end_date")

	// Nothing was written.
	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count)
}

func TestBookUnknownVehicle(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)

	input := bookingFor(user, car)
	input.VehicleID = 9999

	_, err := rental.Book(input)
	assert.True(t, errors.Is(err, services.ErrVehicleNotFound))
}

func alterFrom(input services.BookingInput) services.AlterInput {
	return services.AlterInput{
		Name:          input.Name,
		Phone:         input.Phone,
		Email:         input.Email,
		NationalID:    input.NationalID,
		PostalCode:    input.PostalCode,
		PaymentMethod: input.PaymentMethod,
	}
}

func TestAlterContactOnly(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.DailyPrice = 150 })
	booked, err := rental.Book(bookingFor(user, car))
	require.NoError(t, err)

	change := alterFrom(bookingFor(user, car))
	change.Name = "Maria S. Costa"
	change.PaymentMethod = "Cash"

	altered, err := rental.Alter(booked.ID, change)
	require.NoError(t, err)

	assert.Equal(t, "Maria S. Costa", altered.Name)
	assert.Equal(t, "Cash", altered.PaymentMethod)
	assert.Equal(t, models.ReservationAltered, altered.Status)

	// Dates and price untouched without a new date pair.
	assert.Equal(t, booked.StartDate, altered.StartDate)
	assert.Equal(t, booked.EndDate, altered.EndDate)
	assert.Equal(t, booked.TotalPrice, altered.TotalPrice)
}

func TestAlterWithNewDatesReprices(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.DailyPrice = 150 })
	booked, err := rental.Book(bookingFor(user, car))
	require.NoError(t, err)

	change := alterFrom(bookingFor(user, car))
	change.StartDate = "2026-06-10"
	change.EndDate = "2026-06-12"

	altered, err := rental.Alter(booked.ID, change)
	require.NoError(t, err)
	assert.Equal(t, testkit.Date(2026, time.June, 10), altered.StartDate)
	assert.Equal(t, 2, altered.BillableDays())
	assert.Equal(t, 300.0, altered.TotalPrice)
}

func TestAlterSingleDateIgnored(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)
	booked, err := rental.Book(bookingFor(user, car))
	require.NoError(t, err)

	change := alterFrom(bookingFor(user, car))
	change.StartDate = "2026-06-10" // no end date: pair incomplete

	altered, err := rental.Alter(booked.ID, change)
	require.NoError(t, err)
	assert.Equal(t, booked.StartDate, altered.StartDate)
	assert.Equal(t, booked.TotalPrice, altered.TotalPrice)
	assert.Equal(t, models.ReservationAltered, altered.Status)
}

func TestAlterUnknownReservation(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	_, err := rental.Alter(9999, alterFrom(bookingFor(&models.User{}, &models.Vehicle{})))
	assert.True(t, errors.Is(err, services.ErrReservationNotFound))
}

func TestCancelReleasesVehicle(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)
	booked, err := rental.Book(bookingFor(user, car))
	require.NoError(t, err)

	cancelled, err := rental.Cancel(booked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	var got models.Vehicle
	require.NoError(t, db.First(&got, car.ID).Error)
	assert.True(t, got.Available)
}

func TestCancelUnknownReservation(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	_, err := rental.Cancel(12345)
	assert.True(t, errors.Is(err, services.ErrReservationNotFound))
}

func TestActiveForUser(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	other := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)

	current := testkit.SeedReservation(t, db, user, car, func(r *models.Reservation) {
		r.StartDate = testkit.Date(2026, time.June, 10)
		r.EndDate = testkit.Date(2026, time.June, 20)
	})
	testkit.SeedReservation(t, db, user, car, func(r *models.Reservation) {
		r.EndDate = testkit.Date(2026, time.June, 1) // already over
	})
	testkit.SeedReservation(t, db, user, car, func(r *models.Reservation) {
		r.Status = models.ReservationCancelled
		r.EndDate = testkit.Date(2026, time.June, 30)
	})
	testkit.SeedReservation(t, db, other, car) // someone else's

	active, err := rental.ActiveForUserAt(user.ID, today)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)
}

func TestBookRollsBackWhenVehicleWriteFails(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db)

	// Veto the vehicle flag update; the reservation insert must not survive
	// on its own.
	err := db.Callback().Update().Before("gorm:update").Register("veto_vehicle_updates", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*models.Vehicle); ok {
			tx.AddError(errors.New("vehicles unavailable"))
		}
	})
	require.NoError(t, err)

	_, err = rental.Book(bookingFor(user, car))
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Zero(t, count)

	var got models.Vehicle
	require.NoError(t, db.First(&got, car.ID).Error)
	assert.True(t, got.Available)
}

func TestCancelRollsBackWhenVehicleWriteFails(t *testing.T) {
	db := testkit.NewTestDB(t)
	rental := services.NewRentalService(db)

	user := testkit.SeedUser(t, db)
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Available = false })
	res := testkit.SeedReservation(t, db, user, car)

	require.NoError(t, db.Migrator().DropTable(&models.Vehicle{}))

	_, err := rental.Cancel(res.ID)
	require.Error(t, err)

	// The reservation must not end up cancelled with the vehicle still
	// off-market.
	var got models.Reservation
	require.NoError(t, db.First(&got, res.ID).Error)
	assert.Equal(t, models.ReservationPending, got.Status)
}
