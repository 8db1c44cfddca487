package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
)

func init() {
	Register("users", SeedUsers)
	Register("fleet", SeedFleet)
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// SeedUsers inserts one demo member per tier. Skips when users exist.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{Name: "Ana Costa", Email: "ana@example.com", Phone: "912000001", Tier: models.CategoryEconomy},
		{Name: "Bruno Alves", Email: "bruno@example.com", Phone: "912000002", Tier: models.CategorySilver},
		{Name: "Carla Mendes", Email: "carla@example.com", Phone: "912000003", Tier: models.CategoryGold},
	}
	return db.Create(&users).Error
}

// SeedFleet inserts a small demo fleet spanning all three categories, with
// one vehicle per maintenance condition so a fresh install exercises every
// availability rule. Skips when vehicles exist.
func SeedFleet(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cars := []models.Vehicle{
		{
			ModelName: "Clio", Brand: "Renault", Year: 2022, DailyPrice: 45,
			Description: "Compact city car", Seats: 5, Available: true, Category: models.CategoryEconomy,
			LastServicedAt: date(2026, time.May, 2), NextServiceAt: date(2026, time.November, 2),
			LastInspectedAt: date(2026, time.February, 10),
		},
		{
			ModelName: "Corolla", Brand: "Toyota", Year: 2023, DailyPrice: 80,
			Description: "Reliable family sedan", Seats: 5, Available: true, Category: models.CategoryEconomy,
			LastServicedAt: date(2026, time.April, 18), NextServiceAt: date(2026, time.October, 18),
			LastInspectedAt: date(2026, time.March, 1),
		},
		{
			ModelName: "A4", Brand: "Audi", Year: 2024, DailyPrice: 130,
			Description: "Business saloon", Seats: 5, Available: true, Category: models.CategorySilver,
			LastServicedAt: date(2026, time.June, 5), NextServiceAt: date(2026, time.December, 5),
			LastInspectedAt: date(2026, time.January, 20),
		},
		{
			// Service overdue: the first refresh pulls it from the fleet.
			ModelName: "X5", Brand: "BMW", Year: 2023, DailyPrice: 190,
			Description: "Luxury SUV", Seats: 7, Available: true, Category: models.CategoryGold,
			LastServicedAt: date(2025, time.December, 1), NextServiceAt: date(2026, time.June, 1),
			LastInspectedAt: date(2026, time.January, 5),
		},
		{
			// Inspection expired: same.
			ModelName: "911 Carrera", Brand: "Porsche", Year: 2022, DailyPrice: 320,
			Description: "Sports coupe", Seats: 2, Available: true, Category: models.CategoryGold,
			LastServicedAt: date(2026, time.March, 15), NextServiceAt: date(2026, time.September, 15),
			LastInspectedAt: date(2025, time.April, 1),
		},
		{
			// Blank category: the first refresh files it by price.
			ModelName: "Panda", Brand: "Fiat", Year: 2021, DailyPrice: 35,
			Description: "Budget runabout", Seats: 4, Available: true,
			LastServicedAt: date(2026, time.May, 20), NextServiceAt: date(2026, time.November, 20),
			LastInspectedAt: date(2026, time.April, 12),
		},
	}
	return db.Create(&cars).Error
}
