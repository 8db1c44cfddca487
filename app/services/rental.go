package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/repositories"
	"github.com/shashiranjanraj/luxewheels/pkg/event"
	"github.com/shashiranjanraj/luxewheels/pkg/logger"
	"github.com/shashiranjanraj/luxewheels/pkg/metrics"
	"github.com/shashiranjanraj/luxewheels/pkg/orm"
	"github.com/shashiranjanraj/luxewheels/pkg/validate"
)

// Events fired by the rental service.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationAltered   = "reservation.altered"
	EventReservationCancelled = "reservation.cancelled"
)

var (
	ErrVehicleNotFound     = errors.New("rental: vehicle not found")
	ErrReservationNotFound = errors.New("rental: reservation not found")
)

// ValidationError carries per-field messages for rejected input.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("rental: invalid input: %v", fields)
}

// BookingInput is the request to create a reservation. Dates are ISO
// "2006-01-02" strings; malformed ones fail validation before the engine
// ever sees them.
type BookingInput struct {
	UserID        uint   `json:"user_id"        validate:"required"`
	VehicleID     uint   `json:"vehicle_id"     validate:"required"`
	Name          string `json:"name"           validate:"required,min=2,max=100"`
	Phone         string `json:"phone"          validate:"required,min=7,max=20"`
	Email         string `json:"email"          validate:"required,email"`
	NationalID    string `json:"national_id"    validate:"required,max=30"`
	PostalCode    string `json:"postal_code"    validate:"nullable,max=20"`
	PaymentMethod string `json:"payment_method" validate:"required,in=Card,Cash,Transfer"`
	StartDate     string `json:"start_date"     validate:"required,date"`
	EndDate       string `json:"end_date"       validate:"required,date"`
}

// AlterInput updates an existing reservation. Contact fields and payment
// method always replace the stored values; dates are optional and only take
// effect when both are supplied.
type AlterInput struct {
	Name          string `json:"name"           validate:"required,min=2,max=100"`
	Phone         string `json:"phone"          validate:"required,min=7,max=20"`
	Email         string `json:"email"          validate:"required,email"`
	NationalID    string `json:"national_id"    validate:"required,max=30"`
	PostalCode    string `json:"postal_code"    validate:"nullable,max=20"`
	PaymentMethod string `json:"payment_method" validate:"required,in=Card,Cash,Transfer"`
	StartDate     string `json:"start_date"     validate:"nullable,date"`
	EndDate       string `json:"end_date"       validate:"nullable,date"`
}

// RentalService owns the reservation lifecycle.
type RentalService struct {
	db           *gorm.DB
	vehicles     *repositories.VehicleRepository
	reservations *repositories.ReservationRepository
}

func NewRentalService(db *gorm.DB) *RentalService {
	return &RentalService{
		db:           db,
		vehicles:     repositories.NewVehicleRepository(db),
		reservations: repositories.NewReservationRepository(db),
	}
}

// Book creates a reservation for the vehicle and takes it off the market
// immediately, without waiting for the next fleet refresh.
func (s *RentalService) Book(input BookingInput) (models.Reservation, error) {
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		metrics.RecordRental("book", "invalid")
		return models.Reservation{}, ValidationError(errs)
	}

	start, _ := validate.ParseDate(input.StartDate)
	end, _ := validate.ParseDate(input.EndDate)

	car, err := s.vehicles.FindByID(input.VehicleID)
	if err != nil {
		metrics.RecordRental("book", "not_found")
		return models.Reservation{}, ErrVehicleNotFound
	}

	res := models.Reservation{
		UserID:        input.UserID,
		VehicleID:     car.ID,
		StartDate:     start,
		EndDate:       end,
		Status:        models.ReservationPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Name:          input.Name,
		Phone:         input.Phone,
		Email:         input.Email,
		NationalID:    input.NationalID,
		PostalCode:    input.PostalCode,
	}
	res.TotalPrice = float64(res.BillableDays()) * car.DailyPrice

	// The reservation row and the vehicle flag land together or not at all.
	err = orm.New(s.db).Transaction(func(tx *orm.Query) error {
		if err := repositories.NewReservationRepository(tx.Gorm()).Create(&res); err != nil {
			return err
		}
		return repositories.NewVehicleRepository(tx.Gorm()).SetAvailable(car.ID, false)
	})
	if err != nil {
		metrics.RecordRental("book", "failed")
		return models.Reservation{}, fmt.Errorf("rental: book: %w", err)
	}

	metrics.RecordRental("book", "success")
	event.Fire(EventReservationCreated, &res)
	logger.Info("rental: booked",
		"reservation", res.ID, "vehicle", car.ID, "user", res.UserID,
		"days", res.BillableDays(), "total", res.TotalPrice)
	return res, nil
}

// Alter rewrites a reservation's contact details and payment method, and
// recomputes its dates and price when both new dates are supplied. The
// status always becomes Altered, even for a contact-only change.
func (s *RentalService) Alter(id uint, input AlterInput) (models.Reservation, error) {
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		metrics.RecordRental("alter", "invalid")
		return models.Reservation{}, ValidationError(errs)
	}

	res, err := s.reservations.FindByID(id)
	if err != nil {
		metrics.RecordRental("alter", "not_found")
		return models.Reservation{}, ErrReservationNotFound
	}

	res.Name = input.Name
	res.Phone = input.Phone
	res.Email = input.Email
	res.NationalID = input.NationalID
	res.PostalCode = input.PostalCode
	res.PaymentMethod = input.PaymentMethod

	if input.StartDate != "" && input.EndDate != "" {
		start, _ := validate.ParseDate(input.StartDate)
		end, _ := validate.ParseDate(input.EndDate)

		car, err := s.vehicles.FindByID(res.VehicleID)
		if err != nil {
			metrics.RecordRental("alter", "failed")
			return models.Reservation{}, fmt.Errorf("rental: alter: load vehicle: %w", err)
		}

		res.StartDate = start
		res.EndDate = end
		res.TotalPrice = float64(res.BillableDays()) * car.DailyPrice
	}

	res.Status = models.ReservationAltered

	if err := s.reservations.Save(&res); err != nil {
		metrics.RecordRental("alter", "failed")
		return models.Reservation{}, fmt.Errorf("rental: alter: %w", err)
	}

	metrics.RecordRental("alter", "success")
	event.Fire(EventReservationAltered, &res)
	logger.Info("rental: altered", "reservation", res.ID, "total", res.TotalPrice)
	return res, nil
}

// Cancel terminates a reservation and puts its vehicle straight back on
// the market.
func (s *RentalService) Cancel(id uint) (models.Reservation, error) {
	res, err := s.reservations.FindByID(id)
	if err != nil {
		metrics.RecordRental("cancel", "not_found")
		return models.Reservation{}, ErrReservationNotFound
	}

	res.Status = models.ReservationCancelled
	// Terminal status and the freed vehicle commit together.
	err = orm.New(s.db).Transaction(func(tx *orm.Query) error {
		if err := repositories.NewReservationRepository(tx.Gorm()).Save(&res); err != nil {
			return err
		}
		return repositories.NewVehicleRepository(tx.Gorm()).SetAvailable(res.VehicleID, true)
	})
	if err != nil {
		metrics.RecordRental("cancel", "failed")
		return models.Reservation{}, fmt.Errorf("rental: cancel: %w", err)
	}

	metrics.RecordRental("cancel", "success")
	event.Fire(EventReservationCancelled, &res)
	logger.Info("rental: cancelled", "reservation", res.ID, "vehicle", res.VehicleID)
	return res, nil
}

// ActiveForUser returns the user's reservations that still block a vehicle
// as of today.
func (s *RentalService) ActiveForUser(userID uint) ([]models.Reservation, error) {
	return s.ActiveForUserAt(userID, time.Now())
}

// ActiveForUserAt is ActiveForUser with an explicit reference day.
func (s *RentalService) ActiveForUserAt(userID uint, today time.Time) ([]models.Reservation, error) {
	out, err := s.reservations.ActiveForUser(userID, today)
	if err != nil {
		return nil, fmt.Errorf("rental: active for user: %w", err)
	}
	return out, nil
}
