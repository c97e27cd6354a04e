package catalog

import (
	"strings"

	"caromotors-backend/internal/models"
)

// Category describes a browse category. Built-ins match by predicate over
// the car's text fields; custom categories match by the car's category tag.
type Category struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Desc     string `json:"desc,omitempty"`
	IsCustom bool   `json:"isCustom"`

	match func(models.Car) bool
}

var sedanBrands = []string{"honda", "toyota", "maruti", "hyundai", "skoda", "volkswagen"}
var sedanKeywords = []string{"city", "verna", "ciaz", "dzire", "rapid", "octavia", "camry", "civic", "sedan", "amaze", "aspire", "tigor"}

var suvBrands = []string{"mahindra", "tata", "jeep", "kia", "mg", "ford", "toyota", "isuzu"}
var suvKeywords = []string{"suv", "xuv", "creta", "seltos", "hector", "ecosport", "fortuner", "endeavour", "compass", "harrier", "safari", "scorpio", "bolero", "ertiga", "innova", "hexa"}

var hatchbackKeywords = []string{"swift", "i20", "jazz", "polo", "altroz", "baleno", "santro", "brio", "hatchback", "punch", "kwid", "celerio", "wagon", "ignis", "grand i10", "venue", "sonet"}

var luxuryBrands = []string{"bmw", "mercedes", "audi", "jaguar", "volvo", "land rover", "porsche", "lexus", "bentley", "rolls"}

// BuiltInCategories returns the fixed browse categories.
func BuiltInCategories() []Category {
	return []Category{
		{
			ID: "sedan", Label: "Sedans", Desc: "Comfort meets elegance",
			match: func(car models.Car) bool {
				return brandMatches(car, sedanBrands) && titleMatches(car, sedanKeywords)
			},
		},
		{
			ID: "suv", Label: "SUVs & MUVs", Desc: "Power, space and versatility",
			match: func(car models.Car) bool {
				return brandMatches(car, suvBrands) || titleMatches(car, suvKeywords)
			},
		},
		{
			ID: "hatchback", Label: "Hatchbacks", Desc: "Zippy, affordable & city-ready",
			match: func(car models.Car) bool {
				return titleMatches(car, hatchbackKeywords)
			},
		},
		{
			ID: "luxury", Label: "Luxury", Desc: "Premium & prestige vehicles",
			match: func(car models.Car) bool {
				return brandMatches(car, luxuryBrands) || titleMatches(car, luxuryBrands)
			},
		},
		{
			ID: "electric", Label: "Electric", Desc: "Clean, green, future-ready",
			match: func(car models.Car) bool { return car.FuelType == "Electric" },
		},
		{
			ID: "diesel", Label: "Diesel", Desc: "Fuel-efficient long haulers",
			match: func(car models.Car) bool { return car.FuelType == "Diesel" },
		},
		{
			ID: "petrol", Label: "Petrol", Desc: "Smooth, responsive & popular",
			match: func(car models.Car) bool { return car.FuelType == "Petrol" },
		},
		{
			ID: "cng", Label: "CNG", Desc: "Low running cost & eco-friendly",
			match: func(car models.Car) bool { return car.FuelType == "CNG" },
		},
	}
}

// AllCategories returns "all" plus built-ins plus the given custom
// categories, in browse order.
func AllCategories(custom []CustomCategory) []Category {
	all := make([]Category, 0, len(custom)+9)
	all = append(all, Category{
		ID: "all", Label: "All Vehicles", Desc: "Browse the complete collection",
		match: func(models.Car) bool { return true },
	})
	all = append(all, BuiltInCategories()...)
	for _, c := range custom {
		id := c.ID
		all = append(all, Category{
			ID: id, Label: c.Label, Desc: c.Desc, IsCustom: true,
			match: func(car models.Car) bool { return car.Category == id },
		})
	}
	return all
}

// CarMatchesCategory reports whether the car belongs to the category. A
// direct category tag on the car always matches; otherwise the category's
// predicate decides. Unknown ids never match.
func CarMatchesCategory(car models.Car, categoryID string, custom []CustomCategory) bool {
	if categoryID == "all" {
		return true
	}
	if car.Category == categoryID {
		return true
	}
	for _, cat := range AllCategories(custom) {
		if cat.ID == categoryID {
			return cat.match != nil && cat.match(car)
		}
	}
	return false
}

// PriceRange is a "Shop by Price" bucket. Max <= 0 means unbounded.
type PriceRange struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
}

// PriceRanges returns the fixed price buckets (INR).
func PriceRanges() []PriceRange {
	return []PriceRange{
		{ID: "under3", Label: "Under ₹3L", Min: 0, Max: 300000},
		{ID: "3to5", Label: "₹3L – ₹5L", Min: 300000, Max: 500000},
		{ID: "5to8", Label: "₹5L – ₹8L", Min: 500000, Max: 800000},
		{ID: "8to12", Label: "₹8L – ₹12L", Min: 800000, Max: 1200000},
		{ID: "12to20", Label: "₹12L – ₹20L", Min: 1200000, Max: 2000000},
		{ID: "above20", Label: "Above ₹20L", Min: 2000000},
	}
}

// CarInPriceRange reports whether the car's price falls in the bucket
// (min inclusive, max exclusive).
func CarInPriceRange(car models.Car, r PriceRange) bool {
	if car.Price < r.Min {
		return false
	}
	return r.Max <= 0 || car.Price < r.Max
}

func isBuiltInCategoryID(id string) bool {
	if id == "all" {
		return true
	}
	for _, c := range BuiltInCategories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

func brandMatches(car models.Car, brands []string) bool {
	b := strings.ToLower(car.Brand)
	for _, brand := range brands {
		if strings.Contains(b, brand) {
			return true
		}
	}
	return false
}

func titleMatches(car models.Car, keywords []string) bool {
	t := strings.ToLower(car.Title + " " + car.Model)
	for _, kw := range keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
