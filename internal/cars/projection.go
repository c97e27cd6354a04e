package cars

import (
	"time"

	"caromotors-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PublicCar is the caller-facing view of a listing. The operator-only dealer
// fields do not exist on this type, so no serialization path can leak them.
type PublicCar struct {
	CarID        uuid.UUID      `json:"car_id"`
	Title        string         `json:"title"`
	Brand        string         `json:"brand"`
	Model        string         `json:"model"`
	Price        float64        `json:"price"`
	Year         int            `json:"year"`
	FuelType     string         `json:"fuelType"`
	Transmission string         `json:"transmission"`
	KmDriven     int            `json:"kmDriven"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Ownership    string         `json:"ownership"`
	Images       datatypes.JSON `json:"images"`
	TokenAmount  float64        `json:"tokenAmount"`
	Category     string         `json:"category,omitempty"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ToPublicView strips the operator-only dealer fields. Pure and total:
// absent dealer fields simply stay absent.
func ToPublicView(car models.Car) PublicCar {
	return PublicCar{
		CarID:        car.CarID,
		Title:        car.Title,
		Brand:        car.Brand,
		Model:        car.Model,
		Price:        car.Price,
		Year:         car.Year,
		FuelType:     car.FuelType,
		Transmission: car.Transmission,
		KmDriven:     car.KmDriven,
		Location:     car.Location,
		Description:  car.Description,
		Ownership:    car.Ownership,
		Images:       car.Images,
		TokenAmount:  car.TokenAmount,
		Category:     car.Category,
		Status:       car.Status,
		CreatedAt:    car.CreatedAt,
		UpdatedAt:    car.UpdatedAt,
	}
}

// ToPublicViews projects a slice, never returning nil so JSON renders [].
func ToPublicViews(cars []models.Car) []PublicCar {
	out := make([]PublicCar, 0, len(cars))
	for _, car := range cars {
		out = append(out, ToPublicView(car))
	}
	return out
}
