package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Vehicle categories, derived from the daily price when not set explicitly.
const (
	CategoryEconomy = "Economy"
	CategorySilver  = "Silver"
	CategoryGold    = "Gold"
)

// Status labels returned by Vehicle.StatusLabel.
const (
	StatusLabelAvailable   = "available"
	StatusLabelRented      = "rented"
	StatusLabelMaintenance = "maintenance"
)

// InspectionValidity is how long a safety inspection remains valid.
// A vehicle whose last inspection is older than this is pulled from the fleet.
const InspectionValidity = 365 * 24 * time.Hour

// Vehicle is a rentable car in the fleet.
//
// Available and Category are cached engine outputs: the availability pass
// recomputes them on every listing view and persists them only when they
// change. Category is auto-filled from the price once and never overwritten
// once set.
type Vehicle struct {
	gorm.Model
	ModelName   string  `gorm:"size:100;not null;index" json:"model"`
	Brand       string  `gorm:"size:50;not null;index"  json:"brand"`
	Year        int     `gorm:"not null"                json:"year"`
	DailyPrice  float64 `gorm:"not null"                json:"daily_price"`
	Description string  `gorm:"type:text"               json:"description"`
	Photo       string  `gorm:"size:200"                json:"photo"`
	Available   bool    `gorm:"not null"                json:"available"`
	Seats       int     `gorm:"not null;default:5"      json:"seats"`
	Category    string  `gorm:"size:20"                 json:"category"`

	LastServicedAt  *time.Time `gorm:"type:date" json:"last_serviced_at"`
	NextServiceAt   *time.Time `gorm:"type:date" json:"next_service_at"`
	LastInspectedAt *time.Time `gorm:"type:date" json:"last_inspected_at"`
}

// UnderMaintenance reports whether a maintenance window rule forces the
// vehicle out of the fleet on the given day: the last safety inspection is
// more than a year old, or the scheduled service date has already passed.
// Absent dates impose no constraint.
func (v Vehicle) UnderMaintenance(today time.Time) bool {
	if v.LastInspectedAt != nil && today.Sub(*v.LastInspectedAt) > InspectionValidity {
		return true
	}
	if v.NextServiceAt != nil && v.NextServiceAt.Before(today) {
		return true
	}
	return false
}

// StatusLabel is the cheap display status: maintenance rules first, then the
// stored Available flag as-is. It does NOT consult reservations; the
// authoritative recompute lives in the availability service and runs at
// listing time. This is just the last-known state for a badge.
func (v Vehicle) StatusLabel(today time.Time) string {
	if v.UnderMaintenance(today) {
		return StatusLabelMaintenance
	}
	if !v.Available {
		return StatusLabelRented
	}
	return StatusLabelAvailable
}

// HasCategory reports whether an explicit category is already present.
func (v Vehicle) HasCategory() bool {
	return strings.TrimSpace(v.Category) != ""
}
