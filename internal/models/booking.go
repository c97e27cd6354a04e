package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses. "Token Paid" is the initial state after payment.
const (
	BookingStatusPending      = "Pending"
	BookingStatusTokenPaid    = "Token Paid"
	BookingStatusInDiscussion = "In Discussion"
	BookingStatusDealClosed   = "Deal Closed"
	BookingStatusCancelled    = "Cancelled"
	BookingStatusRefunded     = "Refunded"
)

// Booking records a token payment reserving a car for a customer.
// User and car references are immutable after creation.
type Booking struct {
	BookingID   uuid.UUID      `gorm:"column:booking_id;type:uuid;primaryKey" json:"booking_id"`
	UserID      uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	CarID       uuid.UUID      `gorm:"column:car_id;type:uuid;not null" json:"car_id"`
	TokenAmount float64        `gorm:"column:token_amount;type:decimal(12,2);not null" json:"tokenAmount"`
	PaymentID   string         `gorm:"column:payment_id;not null" json:"paymentId"`
	Status      string         `gorm:"column:status;type:varchar(20);default:'Token Paid'" json:"status"`
	User        User           `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Car         Car            `gorm:"foreignKey:CarID;references:CarID" json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Booking) TableName() string {
	return "Bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingID == uuid.Nil {
		b.BookingID = uuid.New()
	}
	return nil
}
