package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/services"
	"github.com/shashiranjanraj/luxewheels/pkg/testkit"
)

func TestBrowseListsEveryTier(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Category = models.CategoryEconomy })
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Category = models.CategoryEconomy })
	for i := 0; i < 3; i++ {
		testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Category = models.CategoryGold })
	}

	// The catalogue and its page count ignore the member's tier entirely.
	silver, err := listing.BrowseAt("Silver", services.Filters{}, today)
	require.NoError(t, err)
	assert.Len(t, silver.Vehicles, 5)
	assert.Equal(t, 2, silver.TotalPages)

	// Tier only decides which of the listed cards can be booked.
	var bookable int
	for _, v := range silver.Vehicles {
		if silver.Bookable(v) {
			bookable++
		}
	}
	assert.Equal(t, 2, bookable)

	gold, err := listing.BrowseAt("Gold", services.Filters{}, today)
	require.NoError(t, err)
	assert.Len(t, gold.Vehicles, 5)
	for _, v := range gold.Vehicles {
		assert.True(t, gold.Bookable(v))
	}
}

func TestBrowseConjunctiveFilters(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	match := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.Brand = "Audi"
		v.ModelName = "A4"
		v.Seats = 5
		v.DailyPrice = 120
	})
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.Brand = "Audi"
		v.ModelName = "Q7"
		v.Seats = 7
		v.DailyPrice = 120
	})
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.Brand = "BMW"
		v.ModelName = "A4" // same model name, wrong brand
		v.Seats = 5
		v.DailyPrice = 120
	})

	result, err := listing.BrowseAt("Gold", services.Filters{
		Brand:    "Audi",
		Model:    "A4",
		Seats:    5,
		MinPrice: 100,
		MaxPrice: 130,
	}, today)
	require.NoError(t, err)
	require.Len(t, result.Vehicles, 1)
	assert.Equal(t, match.ID, result.Vehicles[0].ID)

	// Price band excludes everything.
	result, err = listing.BrowseAt("Gold", services.Filters{MinPrice: 500}, today)
	require.NoError(t, err)
	assert.Empty(t, result.Vehicles)
	assert.Zero(t, result.TotalPages)
}

func TestBrowsePagination(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	for i := 0; i < 9; i++ {
		testkit.SeedVehicle(t, db)
	}

	result, err := listing.BrowseAt("Gold", services.Filters{}, today)
	require.NoError(t, err)
	assert.Len(t, result.Vehicles, 9)
	assert.Equal(t, 3, result.TotalPages)

	assert.Len(t, result.Page(1), services.CardsPerPage)
	assert.Len(t, result.Page(2), services.CardsPerPage)
	assert.Len(t, result.Page(3), 1)
	assert.Empty(t, result.Page(4))

	// Exactly one full page.
	db2 := testkit.NewTestDB(t)
	listing2 := services.NewListingService(db2)
	for i := 0; i < 4; i++ {
		testkit.SeedVehicle(t, db2)
	}
	result, err = listing2.BrowseAt("Gold", services.Filters{}, today)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
}

func TestBrowseRefreshesFirst(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	// Stored as available but its service date has passed; the browse must
	// hand back the corrected flag.
	car := testkit.SeedVehicle(t, db, func(v *models.Vehicle) {
		v.NextServiceAt = testkit.DatePtr(2026, time.June, 1)
	})

	result, err := listing.BrowseAt("Gold", services.Filters{}, today)
	require.NoError(t, err)
	require.Len(t, result.Vehicles, 1)
	assert.Equal(t, car.ID, result.Vehicles[0].ID)
	assert.False(t, result.Vehicles[0].Available)
	assert.Equal(t, models.StatusLabelMaintenance, result.Vehicles[0].StatusLabel(today))
}

func TestBrowseFacets(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "Audi"; v.ModelName = "A4" })
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "Audi"; v.ModelName = "Q7" })
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "BMW"; v.ModelName = "X5" })

	// No brand selected: full brand list, full model list.
	result, err := listing.BrowseAt("Gold", services.Filters{}, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Audi", "BMW"}, result.Facets.Brands)
	assert.ElementsMatch(t, []string{"A4", "Q7", "X5"}, result.Facets.Models)

	// Brand selected: model facet narrows, brand facet stays complete.
	result, err = listing.BrowseAt("Gold", services.Filters{Brand: "Audi"}, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Audi", "BMW"}, result.Facets.Brands)
	assert.ElementsMatch(t, []string{"A4", "Q7"}, result.Facets.Models)
}

func TestModelsForBrand(t *testing.T) {
	db := testkit.NewTestDB(t)
	listing := services.NewListingService(db)

	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "Audi"; v.ModelName = "A4" })
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "Audi"; v.ModelName = "A4" })
	testkit.SeedVehicle(t, db, func(v *models.Vehicle) { v.Brand = "Audi"; v.ModelName = "Q7" })

	names, err := listing.ModelsForBrand("Audi")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A4", "Q7"}, names)

	names, err = listing.ModelsForBrand("Tesla")
	require.NoError(t, err)
	assert.Empty(t, names)
}
