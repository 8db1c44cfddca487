package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/pkg/orm"
)

// ReservationRepository handles database operations for Reservation.
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// FindByID looks up a reservation by primary key.
func (r *ReservationRepository) FindByID(id uint) (models.Reservation, error) {
	var res models.Reservation
	err := orm.New(r.db).Model(&models.Reservation{}).Where("id = ?", id).First(&res)
	return res, err
}

// Create persists a new reservation.
func (r *ReservationRepository) Create(res *models.Reservation) error {
	return orm.New(r.db).Create(res)
}

// Save persists changes to an existing reservation.
func (r *ReservationRepository) Save(res *models.Reservation) error {
	return orm.New(r.db).Save(res)
}

// OpenOnOrAfter returns every reservation that is not cancelled and whose
// end date is on or after the given day. These are the reservations that
// still block a vehicle.
func (r *ReservationRepository) OpenOnOrAfter(today time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	err := orm.New(r.db).Model(&models.Reservation{}).
		Not("status = ?", models.ReservationCancelled).
		Where("end_date >= ?", today).
		Get(&out)
	return out, err
}

// ActiveForUser returns the user's reservations that still block a vehicle,
// newest start date first.
func (r *ReservationRepository) ActiveForUser(userID uint, today time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	err := orm.New(r.db).Model(&models.Reservation{}).
		Where("user_id = ?", userID).
		Not("status = ?", models.ReservationCancelled).
		Where("end_date >= ?", today).
		Order("start_date desc").
		Get(&out)
	return out, err
}

// ForVehicle returns all reservations on one vehicle, oldest first.
func (r *ReservationRepository) ForVehicle(vehicleID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := orm.New(r.db).Model(&models.Reservation{}).
		Where("vehicle_id = ?", vehicleID).
		Order("start_date").
		Get(&out)
	return out, err
}
