package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/luxewheels/app/services"
)

func TestHasAccessMatrix(t *testing.T) {
	cases := []struct {
		tier     string
		category string
		want     bool
	}{
		{"Gold", "Gold", true},
		{"Gold", "Silver", true},
		{"Gold", "Economy", true},
		{"Silver", "Gold", false},
		{"Silver", "Silver", true},
		{"Silver", "Economy", true},
		{"Economy", "Gold", false},
		{"Economy", "Silver", false},
		{"Economy", "Economy", true},
	}
	for _, c := range cases {
		got := services.HasAccess(c.tier, c.category)
		assert.Equal(t, c.want, got, "%s renting %s", c.tier, c.category)
	}
}

func TestHasAccessCaseInsensitive(t *testing.T) {
	assert.True(t, services.HasAccess("gold", "ECONOMY"))
	assert.True(t, services.HasAccess(" silver ", "silver"))
	assert.False(t, services.HasAccess("SILVER", "gold"))
}

func TestHasAccessUnknownTierDenied(t *testing.T) {
	assert.False(t, services.HasAccess("", "Economy"))
	assert.False(t, services.HasAccess("Platinum", "Economy"))
}
