package migrations

import (
	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_vehicles_table", &CreateVehiclesTable{})
	migration.Register("20260101000002_create_reservations_table", &CreateReservationsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: vehicles --------

type CreateVehiclesTable struct{}

func (m *CreateVehiclesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Vehicle{})
}

func (m *CreateVehiclesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("vehicles")
}

// -------- 0003: reservations --------

type CreateReservationsTable struct{}

func (m *CreateReservationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Reservation{})
}

func (m *CreateReservationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("reservations")
}
