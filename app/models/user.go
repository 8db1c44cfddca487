package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a rental customer. Tier is the membership level (Economy, Silver
// or Gold) that gates which vehicle categories the user may book; comparisons
// are case-insensitive and an unset tier counts as Economy.
type User struct {
	gorm.Model
	Name  string `gorm:"size:100;not null"             json:"name"`
	Email string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Phone string `gorm:"size:20"                       json:"phone"`
	Tier  string `gorm:"size:20;default:Economy"       json:"tier"`
}

// TierOrDefault returns the membership tier, falling back to Economy when
// blank.
func (u User) TierOrDefault() string {
	if strings.TrimSpace(u.Tier) == "" {
		return CategoryEconomy
	}
	return u.Tier
}
