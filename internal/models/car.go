package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Car inventory statuses.
const (
	CarStatusAvailable = "available"
	CarStatusBooked    = "booked"
	CarStatusSold      = "sold"
)

// Car is a pre-owned vehicle listing. Dealer fields are operator-only and
// must be stripped before any public read (see cars.ToPublicView).
type Car struct {
	CarID        uuid.UUID      `gorm:"column:car_id;type:uuid;primaryKey" json:"car_id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Brand        string         `gorm:"column:brand;not null" json:"brand"`
	Model        string         `gorm:"column:model;not null" json:"model"`
	Price        float64        `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Year         int            `gorm:"column:year;not null" json:"year"`
	FuelType     string         `gorm:"column:fuel_type;not null" json:"fuelType"`
	Transmission string         `gorm:"column:transmission;not null" json:"transmission"`
	KmDriven     int            `gorm:"column:km_driven;not null" json:"kmDriven"`
	Location     string         `gorm:"column:location;not null" json:"location"`
	Description  string         `gorm:"column:description;not null" json:"description"`
	Ownership    string         `gorm:"column:ownership" json:"ownership"`
	Images       datatypes.JSON `gorm:"column:images;type:json;not null" json:"images"`
	TokenAmount  float64        `gorm:"column:token_amount;type:decimal(12,2);not null;default:5000" json:"tokenAmount"`
	Category     string         `gorm:"column:category" json:"category,omitempty"`
	Status       string         `gorm:"column:status;type:varchar(20);default:'available'" json:"status"`
	DealerID     string         `gorm:"column:dealer_id" json:"dealerId,omitempty"`
	DealerName   string         `gorm:"column:dealer_name" json:"dealerName,omitempty"`
	DealerPhone  string         `gorm:"column:dealer_phone" json:"dealerPhone,omitempty"`
	DealerPlace  string         `gorm:"column:dealer_place" json:"dealerPlace,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Car) TableName() string {
	return "Cars"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.CarID == uuid.Nil {
		c.CarID = uuid.New()
	}
	return nil
}
