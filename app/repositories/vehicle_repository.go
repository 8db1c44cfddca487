package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/pkg/orm"
)

// VehicleRepository handles database operations for Vehicle.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// All returns the whole fleet.
func (r *VehicleRepository) All() ([]models.Vehicle, error) {
	var cars []models.Vehicle
	err := orm.New(r.db).Model(&models.Vehicle{}).Order("id").Get(&cars)
	return cars, err
}

// FindByID looks up a vehicle by primary key.
func (r *VehicleRepository) FindByID(id uint) (models.Vehicle, error) {
	var car models.Vehicle
	err := orm.New(r.db).Model(&models.Vehicle{}).Where("id = ?", id).First(&car)
	return car, err
}

// Brands returns every distinct brand in the fleet, sorted.
func (r *VehicleRepository) Brands() ([]string, error) {
	var brands []string
	err := orm.New(r.db).Model(&models.Vehicle{}).Pluck("brand", &brands)
	return brands, err
}

// ModelsForBrand returns the distinct model names offered under one brand.
func (r *VehicleRepository) ModelsForBrand(brand string) ([]string, error) {
	var names []string
	err := orm.New(r.db).Model(&models.Vehicle{}).
		Where("brand = ?", brand).
		Pluck("model_name", &names)
	return names, err
}

// Create persists a new vehicle record.
func (r *VehicleRepository) Create(car *models.Vehicle) error {
	return orm.New(r.db).Create(car)
}

// Save persists changes to an existing vehicle.
func (r *VehicleRepository) Save(car *models.Vehicle) error {
	return orm.New(r.db).Save(car)
}

// SetAvailable flips the stored availability flag for one vehicle.
func (r *VehicleRepository) SetAvailable(id uint, available bool) error {
	return orm.New(r.db).Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"available": available})
}

// UpdatePhoto records the stored photo path for one vehicle.
func (r *VehicleRepository) UpdatePhoto(id uint, path string) error {
	return orm.New(r.db).Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"photo": path})
}

// ApplyChanges writes per-vehicle column updates in a single transaction.
// An empty change set performs no database work at all.
func (r *VehicleRepository) ApplyChanges(changes map[uint]map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return orm.New(r.db).Transaction(func(tx *orm.Query) error {
		for id, fields := range changes {
			err := tx.Model(&models.Vehicle{}).
				Where("id = ?", id).
				Updates(fields)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
