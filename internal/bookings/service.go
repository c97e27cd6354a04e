package bookings

import (
	"context"
	"errors"

	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateBooking reserves the car for the customer after token payment.
// The conditional update is the commit point: under concurrent attempts for
// the same car, only one claim flips available -> booked, the rest conflict.
// Booking insert and claim share one transaction, so a failed insert rolls
// the claim back.
func (s *Service) CreateBooking(ctx context.Context, userID, carID uuid.UUID, tokenAmount float64, paymentID string) (*models.Booking, error) {
	if paymentID == "" {
		return nil, apperr.Validation("paymentId is required")
	}
	if tokenAmount <= 0 {
		return nil, apperr.Validation("Token amount must be a positive number")
	}

	var booking *models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.Where("car_id = ?", carID).First(&car).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Car not found")
			}
			return err
		}

		claim := tx.Model(&models.Car{}).
			Where("car_id = ? AND status = ?", carID, models.CarStatusAvailable).
			Update("status", models.CarStatusBooked)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return apperr.Conflict("Car is already booked or sold")
		}

		b := &models.Booking{
			UserID:      userID,
			CarID:       carID,
			TokenAmount: tokenAmount,
			PaymentID:   paymentID,
			Status:      models.BookingStatusTokenPaid,
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CarSummary is the joined car view on a booking listing.
type CarSummary struct {
	CarID  uuid.UUID      `json:"car_id"`
	Title  string         `json:"title"`
	Brand  string         `json:"brand"`
	Price  float64        `json:"price"`
	Images datatypes.JSON `json:"images,omitempty"`
}

// UserSummary is the joined customer view on an admin booking listing.
type UserSummary struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

// BookingView is a booking joined with its car (and, for admins, customer).
type BookingView struct {
	models.Booking
	Car  *CarSummary  `json:"car,omitempty"`
	User *UserSummary `json:"user,omitempty"`
}

// ListForCustomer returns the customer's bookings, newest first, each with a
// car summary.
func (s *Service) ListForCustomer(ctx context.Context, userID uuid.UUID) ([]BookingView, error) {
	var records []models.Booking
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Car").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(records))
	for _, b := range records {
		views = append(views, BookingView{
			Booking: b,
			Car:     carSummary(b.Car, true),
		})
	}
	return views, nil
}

// ListAll returns every booking, newest first, joined with car and customer
// summaries. Privileged.
func (s *Service) ListAll(ctx context.Context) ([]BookingView, error) {
	var records []models.Booking
	if err := s.DB.WithContext(ctx).
		Preload("Car").
		Preload("User").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(records))
	for _, b := range records {
		view := BookingView{
			Booking: b,
			Car:     carSummary(b.Car, false),
		}
		if b.User.UserID != uuid.Nil {
			view.User = &UserSummary{
				UserID: b.User.UserID,
				Name:   b.User.Name,
				Email:  b.User.Email,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateStatus persists the new booking status and applies the car status
// cascade in the same transaction. Privileged.
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus string) (*models.Booking, error) {
	if !IsValidStatus(newStatus) {
		return nil, apperr.Validation("Invalid booking status")
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Booking not found")
			}
			return err
		}

		if err := tx.Model(&booking).Update("status", newStatus).Error; err != nil {
			return err
		}

		if carStatus, changed := CarStatusAfter(newStatus); changed {
			if err := tx.Model(&models.Car{}).
				Where("car_id = ?", booking.CarID).
				Update("status", carStatus).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// carSummary maps a preloaded car to its summary; nil when the car record is
// gone (deleted listing). Images are included only for customer-facing lists.
func carSummary(car models.Car, withImages bool) *CarSummary {
	if car.CarID == uuid.Nil {
		return nil
	}
	s := &CarSummary{
		CarID: car.CarID,
		Title: car.Title,
		Brand: car.Brand,
		Price: car.Price,
	}
	if withImages {
		s.Images = car.Images
	}
	return s
}
