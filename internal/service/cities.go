package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/moodcast/backend/internal/domain"
	"github.com/moodcast/backend/pkg/utils"
)

var defaultCities = []domain.City{
	{Name: "Moscow", Latitude: 55.7558, Longitude: 37.6173},
	{Name: "Saint Petersburg", Latitude: 59.9343, Longitude: 30.3351},
	{Name: "Novosibirsk", Latitude: 55.0084, Longitude: 82.9357},
	{Name: "Yekaterinburg", Latitude: 56.8389, Longitude: 60.6057},
	{Name: "Kazan", Latitude: 55.7961, Longitude: 49.1064},
	{Name: "Sochi", Latitude: 43.5855, Longitude: 39.7231},
	{Name: "Vladivostok", Latitude: 43.1155, Longitude: 131.8855},
	{Name: "Almaty", Latitude: 43.2389, Longitude: 76.8897},
	{Name: "London", Latitude: 51.5074, Longitude: -0.1278},
	{Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Name: "New York", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
}

// CityCatalog maps city names to coordinates
type CityCatalog struct {
	cities      map[string]domain.City
	defaultCity domain.City
}

// NewCityCatalog creates the built-in catalog. defaultName must be one of its cities.
func NewCityCatalog(defaultName string) (*CityCatalog, error) {
	return NewCityCatalogFrom(defaultCities, defaultName)
}

// NewCityCatalogFrom creates a catalog from an explicit list
func NewCityCatalogFrom(cities []domain.City, defaultName string) (*CityCatalog, error) {
	c := &CityCatalog{cities: make(map[string]domain.City, len(cities))}
	for _, city := range cities {
		c.cities[city.Name] = city
	}

	def, ok := c.cities[defaultName]
	if !ok {
		return nil, fmt.Errorf("cities: default city %q is not in the catalog", defaultName)
	}
	c.defaultCity = def

	return c, nil
}

// Lookup returns the named city
func (c *CityCatalog) Lookup(name string) (domain.City, bool) {
	city, ok := c.cities[name]
	return city, ok
}

// Resolve returns the named city, or the default one when unknown
func (c *CityCatalog) Resolve(name string) domain.City {
	if city, ok := c.cities[name]; ok {
		return city
	}
	return c.defaultCity
}

// Default returns the default city
func (c *CityCatalog) Default() domain.City {
	return c.defaultCity
}

// List returns all cities sorted by name
func (c *CityCatalog) List() []domain.City {
	out := make([]domain.City, 0, len(c.cities))
	for _, city := range c.cities {
		out = append(out, city)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Nearest returns the catalog city closest to the given point
func (c *CityCatalog) Nearest(lat, lon float64) (domain.City, float64) {
	best, bestDist := c.defaultCity, math.Inf(1)
	for _, city := range c.List() {
		if d := utils.Haversine(lat, lon, city.Latitude, city.Longitude); d < bestDist {
			best, bestDist = city, d
		}
	}
	return best, bestDist
}
