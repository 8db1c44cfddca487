package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation lifecycle. Pending is the entry state; an edit moves it to
// Altered, a cancellation to Cancelled. Cancelled is terminal.
const (
	ReservationPending   = "Pending"
	ReservationAltered   = "Altered"
	ReservationCancelled = "Cancelled"
)

// PaymentPending is the initial payment status of every booking.
const PaymentPending = "Pending"

// Reservation is a rental booking of one vehicle by one user.
// EndDate is inclusive; duration math assumes EndDate >= StartDate and a
// zero-length stay bills as a single day.
type Reservation struct {
	gorm.Model
	UserID    uint `gorm:"not null;index" json:"user_id"`
	VehicleID uint `gorm:"not null;index" json:"vehicle_id"`

	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalPrice float64   `gorm:"not null"           json:"total_price"`

	Status        string `gorm:"size:50;default:Pending" json:"status"`
	PaymentMethod string `gorm:"size:50"                 json:"payment_method"`
	PaymentStatus string `gorm:"size:50;default:Pending" json:"payment_status"`

	// Renter contact details, captured per booking (not from the account).
	Name       string `gorm:"size:100;not null" json:"name"`
	Phone      string `gorm:"size:30;not null"  json:"phone"`
	Email      string `gorm:"size:120;not null" json:"email"`
	NationalID string `gorm:"size:15;not null"  json:"national_id"`
	PostalCode string `gorm:"size:20;not null"  json:"postal_code"`
}

// Cancelled reports whether the reservation has reached its terminal state.
func (r Reservation) Cancelled() bool {
	return r.Status == ReservationCancelled
}

// ActiveOn reports whether the reservation still blocks its vehicle on the
// given day: not cancelled, and its inclusive end date has not passed.
func (r Reservation) ActiveOn(today time.Time) bool {
	return !r.Cancelled() && !r.EndDate.Before(today)
}

// BillableDays is the number of days charged: the date difference between
// start and end, with a same-day rental billed as one day.
func (r Reservation) BillableDays() int {
	days := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if days == 0 {
		days = 1
	}
	return days
}
