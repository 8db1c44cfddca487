package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/luxewheels/app/models"
	"github.com/shashiranjanraj/luxewheels/app/repositories"
	"github.com/shashiranjanraj/luxewheels/pkg/cache"
	"github.com/shashiranjanraj/luxewheels/pkg/collection"
	"github.com/shashiranjanraj/luxewheels/pkg/metrics"
)

// CardsPerPage is the fixed number of vehicle cards per catalogue page.
const CardsPerPage = 4

const (
	facetTTL       = time.Minute
	facetBrandsKey = "facets:brands"
	facetModelsKey = "facets:models:" // + brand
)

// Filters narrows a catalogue browse. Zero values mean "any".
type Filters struct {
	Brand    string
	Model    string
	Seats    int
	MinPrice float64
	MaxPrice float64
}

// Facets are the filter options offered alongside a result set. Brands is
// always the full fleet's brand list; Models is scoped to the selected
// brand when one is set.
type Facets struct {
	Brands []string
	Models []string
}

// Result is one catalogue browse outcome. Vehicles holds every vehicle the
// query filters matched, whatever the member's tier; TotalPages describes how
// that set splits into CardsPerPage-sized pages. Tier eligibility never
// narrows the set, it only gates each card through Bookable.
type Result struct {
	Tier       string
	Vehicles   []models.Vehicle
	Facets     Facets
	TotalPages int
}

// Page returns the vehicles of one 1-indexed page.
func (r Result) Page(n int) []models.Vehicle {
	return collection.Paginate(r.Vehicles, n, CardsPerPage)
}

// Bookable reports whether the browsing member's tier may rent v. Ineligible
// vehicles stay listed; callers disable the booking action on their card.
func (r Result) Bookable(v models.Vehicle) bool {
	return HasAccess(r.Tier, v.Category)
}

// ListingService builds the browseable catalogue for one member tier.
type ListingService struct {
	vehicles *repositories.VehicleRepository
	fleet    *FleetService
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{
		vehicles: repositories.NewVehicleRepository(db),
		fleet:    NewFleetService(db),
	}
}

// Browse refreshes the fleet and returns the vehicles matching f, paged for
// display. Every match is listed regardless of the member's tier; tier only
// decides which cards are bookable.
func (s *ListingService) Browse(tier string, f Filters) (Result, error) {
	return s.BrowseAt(tier, f, time.Now())
}

// BrowseAt is Browse with an explicit reference day.
func (s *ListingService) BrowseAt(tier string, f Filters, today time.Time) (Result, error) {
	start := time.Now()
	defer func() {
		metrics.ListingDuration.WithLabelValues(tier).Observe(time.Since(start).Seconds())
	}()

	// The catalogue never shows stale availability.
	summary, err := s.fleet.Refresh(today)
	if err != nil {
		return Result{}, fmt.Errorf("listing: browse: %w", err)
	}
	if summary.AvailabilityWrites > 0 || summary.CategoryWrites > 0 {
		s.forgetFacets(f.Brand)
	}

	cars, err := s.vehicles.All()
	if err != nil {
		return Result{}, fmt.Errorf("listing: browse: %w", err)
	}

	matched := collection.Filter(cars, f.matches)

	facets, err := s.facets(f.Brand)
	if err != nil {
		return Result{}, fmt.Errorf("listing: browse: %w", err)
	}

	result := Result{Tier: tier, Vehicles: matched, Facets: facets}
	if len(matched) > 0 {
		result.TotalPages = int(math.Ceil(float64(len(matched)) / float64(CardsPerPage)))
	}
	return result, nil
}

// ModelsForBrand returns the model names offered under one brand, for the
// dependent model filter.
func (s *ListingService) ModelsForBrand(brand string) ([]string, error) {
	var names []string
	if cache.Get(facetModelsKey+brand, &names) {
		return names, nil
	}
	names, err := s.vehicles.ModelsForBrand(brand)
	if err != nil {
		return nil, fmt.Errorf("listing: models for brand: %w", err)
	}
	cache.Set(facetModelsKey+brand, names, facetTTL)
	return names, nil
}

func (f Filters) matches(v models.Vehicle) bool {
	if f.Brand != "" && v.Brand != f.Brand {
		return false
	}
	if f.Model != "" && v.ModelName != f.Model {
		return false
	}
	if f.Seats > 0 && v.Seats != f.Seats {
		return false
	}
	if f.MinPrice > 0 && v.DailyPrice < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && v.DailyPrice > f.MaxPrice {
		return false
	}
	return true
}

func (s *ListingService) facets(brand string) (Facets, error) {
	var brands []string
	if !cache.Get(facetBrandsKey, &brands) {
		var err error
		brands, err = s.vehicles.Brands()
		if err != nil {
			return Facets{}, err
		}
		cache.Set(facetBrandsKey, brands, facetTTL)
	}

	// Model facet follows the brand filter; without one it spans the fleet.
	var names []string
	if brand != "" {
		var err error
		names, err = s.ModelsForBrand(brand)
		if err != nil {
			return Facets{}, err
		}
	} else {
		if !cache.Get(facetModelsKey+"*", &names) {
			cars, err := s.vehicles.All()
			if err != nil {
				return Facets{}, err
			}
			names = collection.Unique(collection.Map(cars, func(v models.Vehicle) string {
				return v.ModelName
			}))
			collection.SortBy(names, func(a, b string) bool { return a < b })
			cache.Set(facetModelsKey+"*", names, facetTTL)
		}
	}

	return Facets{Brands: brands, Models: names}, nil
}

func (s *ListingService) forgetFacets(brand string) {
	cache.Forget(facetBrandsKey)
	cache.Forget(facetModelsKey + "*")
	if brand != "" {
		cache.Forget(facetModelsKey + brand)
	}
}
