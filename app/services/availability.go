package services

import (
	"fmt"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/repositories"
	"github.com/shashiranjanraj/luxewheels/pkg/collection"
	"github.com/shashiranjanraj/luxewheels/pkg/event"
	"github.com/shashiranjanraj/luxewheels/pkg/logger"
	"github.com/shashiranjanraj/luxewheels/pkg/metrics"
	"github.com/shashiranjanraj/luxewheels/pkg/storage"
)

// Events fired by the fleet service.
const (
	EventAvailabilityChanged = "vehicle.availability_changed"
	EventVehicleCategorized  = "vehicle.categorized"
)

// Category price thresholds (daily price, inclusive upper bounds).
const (
	economyMaxDaily = 100
	silverMaxDaily  = 150
)

// Resolve recomputes whether a vehicle can be offered, from its maintenance
// dates and its reservations. reservations must belong to the vehicle; the
// returned reason is one of the models.StatusLabel* values.
//
// Maintenance wins over rentals: a vehicle with an expired inspection or an
// overdue service is out of the fleet no matter what bookings it holds.
func Resolve(v models.Vehicle, reservations []models.Reservation, today time.Time) (bool, string) {
	if v.LastInspectedAt != nil && today.Sub(*v.LastInspectedAt) > models.InspectionValidity {
		return false, models.StatusLabelMaintenance
	}
	if v.NextServiceAt != nil && v.NextServiceAt.Before(today) {
		return false, models.StatusLabelMaintenance
	}
	for _, r := range reservations {
		if r.ActiveOn(today) {
			return false, models.StatusLabelRented
		}
	}
	return true, models.StatusLabelAvailable
}

// Categorize returns the category the vehicle should carry. A non-blank
// category is kept untouched; only blank ones are derived from daily price.
func Categorize(v models.Vehicle) string {
	if v.HasCategory() {
		return v.Category
	}
	switch {
	case v.DailyPrice <= economyMaxDaily:
		return models.CategoryEconomy
	case v.DailyPrice <= silverMaxDaily:
		return models.CategorySilver
	default:
		return models.CategoryGold
	}
}

// FleetService recomputes fleet state and manages vehicle assets.
type FleetService struct {
	vehicles     *repositories.VehicleRepository
	reservations *repositories.ReservationRepository
}

func NewFleetService(db *gorm.DB) *FleetService {
	return &FleetService{
		vehicles:     repositories.NewVehicleRepository(db),
		reservations: repositories.NewReservationRepository(db),
	}
}

// RefreshSummary reports what one refresh pass did.
type RefreshSummary struct {
	Vehicles           int
	AvailabilityWrites int
	CategoryWrites     int
}

// Refresh walks the whole fleet, recomputes availability and category for
// every vehicle, and persists only the values that differ from what is
// stored, in a single transaction. Running it twice in a row performs zero
// writes the second time.
func (s *FleetService) Refresh(today time.Time) (RefreshSummary, error) {
	defer metrics.ObserveRefresh(time.Now())

	cars, err := s.vehicles.All()
	if err != nil {
		metrics.RefreshRuns.WithLabelValues("failed").Inc()
		return RefreshSummary{}, fmt.Errorf("fleet: refresh: load vehicles: %w", err)
	}

	open, err := s.reservations.OpenOnOrAfter(today)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues("failed").Inc()
		return RefreshSummary{}, fmt.Errorf("fleet: refresh: load reservations: %w", err)
	}
	byVehicle := collection.GroupBy(open, func(r models.Reservation) uint { return r.VehicleID })

	summary := RefreshSummary{Vehicles: len(cars)}
	changes := make(map[uint]map[string]interface{})
	changed := func(id uint) map[string]interface{} {
		if changes[id] == nil {
			changes[id] = map[string]interface{}{}
		}
		return changes[id]
	}

	for _, car := range cars {
		available, reason := Resolve(car, byVehicle[car.ID], today)
		if available != car.Available {
			changed(car.ID)["available"] = available
			summary.AvailabilityWrites++
			metrics.FleetWrites.WithLabelValues("available").Inc()
			event.Fire(EventAvailabilityChanged, map[string]interface{}{
				"vehicle_id": car.ID,
				"available":  available,
				"reason":     reason,
			})
			logger.Debug("fleet: availability changed",
				"vehicle", car.ID, "available", available, "reason", reason)
		}

		if category := Categorize(car); category != car.Category {
			changed(car.ID)["category"] = category
			summary.CategoryWrites++
			metrics.FleetWrites.WithLabelValues("category").Inc()
			event.Fire(EventVehicleCategorized, map[string]interface{}{
				"vehicle_id": car.ID,
				"category":   category,
			})
		}
	}

	if err := s.vehicles.ApplyChanges(changes); err != nil {
		metrics.RefreshRuns.WithLabelValues("failed").Inc()
		return RefreshSummary{}, fmt.Errorf("fleet: refresh: apply: %w", err)
	}

	metrics.RefreshRuns.WithLabelValues("success").Inc()
	if len(changes) > 0 {
		logger.Info("fleet: refresh applied",
			"vehicles", summary.Vehicles,
			"availability_writes", summary.AvailabilityWrites,
			"category_writes", summary.CategoryWrites)
	}
	return summary, nil
}

// AttachPhoto stores a vehicle photo on the configured disk and records its
// path on the vehicle. The extension of name is kept; everything else is
// derived from the vehicle ID.
func (s *FleetService) AttachPhoto(vehicleID uint, name string, data []byte) (string, error) {
	car, err := s.vehicles.FindByID(vehicleID)
	if err != nil {
		return "", ErrVehicleNotFound
	}

	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		ext = ".jpg"
	}
	photoPath := fmt.Sprintf("vehicles/%d%s", car.ID, ext)

	if err := storage.Put(photoPath, data); err != nil {
		return "", fmt.Errorf("fleet: attach photo: %w", err)
	}
	if err := s.vehicles.UpdatePhoto(car.ID, photoPath); err != nil {
		return "", fmt.Errorf("fleet: attach photo: %w", err)
	}
	return storage.URL(photoPath), nil
}

// PhotoURL returns the public URL for a vehicle's stored photo, or "" when
// none is attached.
func (s *FleetService) PhotoURL(v models.Vehicle) string {
	if v.Photo == "" {
		return ""
	}
	return storage.URL(v.Photo)
}
