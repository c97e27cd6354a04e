package cars

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"caromotors-backend/internal/bookings"
	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageSize is the fixed page size for the public browse surface.
const PageSize = 6

const defaultTokenAmount = 5000

var fuelTypes = map[string]bool{
	"Petrol":   true,
	"Diesel":   true,
	"CNG":      true,
	"Electric": true,
}

var transmissions = map[string]bool{
	"Manual":    true,
	"Automatic": true,
	"CVT":       true,
	"AMT":       true,
	"DCT":       true,
}

var carStatuses = map[string]bool{
	models.CarStatusAvailable: true,
	models.CarStatusBooked:    true,
	models.CarStatusSold:      true,
}

type Service struct {
	DB *gorm.DB
}

type CreateCarInput struct {
	Title        string
	Brand        string
	Model        string
	Price        float64
	Year         int
	FuelType     string
	Transmission string
	KmDriven     int
	Location     string
	Description  string
	Ownership    string
	Images       []string
	TokenAmount  float64
	Category     string
	DealerID     string
	DealerName   string
	DealerPhone  string
	DealerPlace  string
}

// CreateCar validates and stores a new listing. The status is always forced
// to "available" regardless of caller input.
func (s *Service) CreateCar(ctx context.Context, in CreateCarInput) (*models.Car, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"brand", in.Brand},
		{"model", in.Model},
		{"fuelType", in.FuelType},
		{"transmission", in.Transmission},
		{"location", in.Location},
		{"description", in.Description},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, apperr.Validation("Missing required field: " + f.name)
		}
	}
	if in.Price <= 0 {
		return nil, apperr.Validation("Price must be a positive number")
	}
	if in.Year <= 0 {
		return nil, apperr.Validation("Missing required field: year")
	}
	if in.KmDriven < 0 {
		return nil, apperr.Validation("kmDriven must not be negative")
	}
	if !fuelTypes[in.FuelType] {
		return nil, apperr.Validation("Invalid fuel type")
	}
	if !transmissions[in.Transmission] {
		return nil, apperr.Validation("Invalid transmission")
	}
	if len(in.Images) == 0 {
		return nil, apperr.Validation("At least one image is required")
	}
	tokenAmount := in.TokenAmount
	if tokenAmount == 0 {
		tokenAmount = defaultTokenAmount
	}
	if tokenAmount < 0 {
		return nil, apperr.Validation("Token amount must be a positive number")
	}

	imagesJSON, err := json.Marshal(in.Images)
	if err != nil {
		return nil, err
	}

	car := &models.Car{
		Title:        in.Title,
		Brand:        in.Brand,
		Model:        in.Model,
		Price:        in.Price,
		Year:         in.Year,
		FuelType:     in.FuelType,
		Transmission: in.Transmission,
		KmDriven:     in.KmDriven,
		Location:     in.Location,
		Description:  in.Description,
		Ownership:    in.Ownership,
		Images:       datatypes.JSON(imagesJSON),
		TokenAmount:  tokenAmount,
		Category:     in.Category,
		Status:       models.CarStatusAvailable,
		DealerID:     in.DealerID,
		DealerName:   in.DealerName,
		DealerPhone:  in.DealerPhone,
		DealerPlace:  in.DealerPlace,
	}
	if err := s.DB.WithContext(ctx).Create(car).Error; err != nil {
		return nil, err
	}
	return car, nil
}

// GetCarByID returns the full listing including operator-only fields.
func (s *Service) GetCarByID(ctx context.Context, carID uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := s.DB.WithContext(ctx).Where("car_id = ?", carID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Car not found")
		}
		return nil, err
	}
	return &car, nil
}

// GetAllCarsAdmin returns every listing in all statuses, newest first.
func (s *Service) GetAllCarsAdmin(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

type UpdateCarInput struct {
	Title        *string
	Brand        *string
	Model        *string
	Price        *float64
	Year         *int
	FuelType     *string
	Transmission *string
	KmDriven     *int
	Location     *string
	Description  *string
	Ownership    *string
	Images       []string
	TokenAmount  *float64
	Category     *string
	Status       *string
	DealerID     *string
	DealerName   *string
	DealerPhone  *string
	DealerPlace  *string
}

// UpdateCar merges the supplied fields onto the listing. A status change is
// refused while an open booking references the car, so an admin edit cannot
// silently override an active booking.
func (s *Service) UpdateCar(ctx context.Context, carID uuid.UUID, in UpdateCarInput) (*models.Car, error) {
	var car models.Car
	if err := s.DB.WithContext(ctx).Where("car_id = ?", carID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Car not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setStr("title", in.Title)
	setStr("brand", in.Brand)
	setStr("model", in.Model)
	setStr("location", in.Location)
	setStr("description", in.Description)
	setStr("ownership", in.Ownership)
	setStr("category", in.Category)
	setStr("dealer_id", in.DealerID)
	setStr("dealer_name", in.DealerName)
	setStr("dealer_phone", in.DealerPhone)
	setStr("dealer_place", in.DealerPlace)

	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Validation("Price must be a positive number")
		}
		updates["price"] = *in.Price
	}
	if in.Year != nil {
		if *in.Year <= 0 {
			return nil, apperr.Validation("Invalid year")
		}
		updates["year"] = *in.Year
	}
	if in.KmDriven != nil {
		if *in.KmDriven < 0 {
			return nil, apperr.Validation("kmDriven must not be negative")
		}
		updates["km_driven"] = *in.KmDriven
	}
	if in.FuelType != nil {
		if !fuelTypes[*in.FuelType] {
			return nil, apperr.Validation("Invalid fuel type")
		}
		updates["fuel_type"] = *in.FuelType
	}
	if in.Transmission != nil {
		if !transmissions[*in.Transmission] {
			return nil, apperr.Validation("Invalid transmission")
		}
		updates["transmission"] = *in.Transmission
	}
	if in.TokenAmount != nil {
		if *in.TokenAmount <= 0 {
			return nil, apperr.Validation("Token amount must be a positive number")
		}
		updates["token_amount"] = *in.TokenAmount
	}
	if in.Images != nil {
		if len(in.Images) == 0 {
			return nil, apperr.Validation("At least one image is required")
		}
		b, err := json.Marshal(in.Images)
		if err != nil {
			return nil, err
		}
		updates["images"] = datatypes.JSON(b)
	}
	if in.Status != nil && *in.Status != car.Status {
		if !carStatuses[*in.Status] {
			return nil, apperr.Validation("Invalid status")
		}
		open, err := s.hasOpenBooking(ctx, carID)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, apperr.Conflict("Car has an active booking; update the booking status instead")
		}
		updates["status"] = *in.Status
	}

	if len(updates) == 0 {
		return &car, nil
	}
	if err := s.DB.WithContext(ctx).Model(&car).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("car_id = ?", carID).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// DeleteCar removes the listing. Refused while open bookings reference it;
// sold or re-available cars with only closed bookings delete fine.
func (s *Service) DeleteCar(ctx context.Context, carID uuid.UUID) error {
	var car models.Car
	if err := s.DB.WithContext(ctx).Where("car_id = ?", carID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Car not found")
		}
		return err
	}

	open, err := s.hasOpenBooking(ctx, carID)
	if err != nil {
		return err
	}
	if open {
		return apperr.Conflict("Car has open bookings and cannot be deleted")
	}

	return s.DB.WithContext(ctx).Delete(&car).Error
}

func (s *Service) hasOpenBooking(ctx context.Context, carID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("car_id = ? AND status IN ?", carID, bookings.OpenStatuses()).
		Count(&count).Error
	return count > 0, err
}

// FindFilter narrows the public browse query.
type FindFilter struct {
	Brand    string
	MaxPrice float64
}

// CarPage is one page of the public browse result.
type CarPage struct {
	Cars        []models.Car
	TotalPages  int
	CurrentPage int
}

// FindAvailable returns one page of available cars matching the filter,
// newest first. A page past the end returns zero cars with the requested
// page echoed back.
func (s *Service) FindAvailable(ctx context.Context, f FindFilter, page int) (*CarPage, error) {
	if page < 1 {
		page = 1
	}

	filtered := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&models.Car{}).Where("status = ?", models.CarStatusAvailable)
		if f.Brand != "" {
			q = q.Where("brand = ?", f.Brand)
		}
		if f.MaxPrice > 0 {
			q = q.Where("price <= ?", f.MaxPrice)
		}
		return q
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, err
	}

	cars := []models.Car{}
	if err := filtered().
		Order("created_at DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&cars).Error; err != nil {
		return nil, err
	}

	return &CarPage{
		Cars:        cars,
		TotalPages:  int(math.Ceil(float64(count) / float64(PageSize))),
		CurrentPage: page,
	}, nil
}
