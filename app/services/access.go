package services

import (
	"strings"

	"github.com/shashiranjanraj/luxewheels/app/models"
)

// HasAccess reports whether a member of userTier may rent a vehicle of
// vehicleCategory. Tiers nest downward: Gold sees everything, Silver sees
// Silver and Economy, Economy sees only Economy. Comparison is
// case-insensitive; unknown tiers see nothing.
func HasAccess(userTier, vehicleCategory string) bool {
	tier := strings.ToLower(strings.TrimSpace(userTier))
	category := strings.ToLower(strings.TrimSpace(vehicleCategory))

	switch tier {
	case strings.ToLower(models.CategoryGold):
		return true
	case strings.ToLower(models.CategorySilver):
		return category == strings.ToLower(models.CategorySilver) ||
			category == strings.ToLower(models.CategoryEconomy)
	case strings.ToLower(models.CategoryEconomy):
		return category == strings.ToLower(models.CategoryEconomy)
	default:
		return false
	}
}
