package cars

import (
	"context"
	"fmt"
	"testing"

	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCarTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Car{}, &models.Booking{}))
	return &Service{DB: db}, db
}

func validInput() CreateCarInput {
	return CreateCarInput{
		Title:        "Maruti Swift ZXI 2021",
		Brand:        "Maruti",
		Model:        "Swift",
		Price:        650000,
		Year:         2021,
		FuelType:     "Petrol",
		Transmission: "Manual",
		KmDriven:     18000,
		Location:     "Ernakulam",
		Description:  "Second owner, new tyres",
		Images:       []string{"swift-front.jpg", "swift-rear.jpg"},
		DealerName:   "Prime Motors",
		DealerPhone:  "9800011122",
		DealerPlace:  "Ernakulam",
	}
}

func TestCreateCar_ForcesAvailableStatus(t *testing.T) {
	svc, _ := setupCarTest(t)

	car, err := svc.CreateCar(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusAvailable, car.Status)
	assert.NotEqual(t, uuid.Nil, car.CarID)
}

func TestCreateCar_DefaultTokenAmount(t *testing.T) {
	svc, _ := setupCarTest(t)

	car, err := svc.CreateCar(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, float64(5000), car.TokenAmount)

	in := validInput()
	in.TokenAmount = 10000
	car2, err := svc.CreateCar(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, float64(10000), car2.TokenAmount)
}

func TestCreateCar_Validation(t *testing.T) {
	svc, _ := setupCarTest(t)
	ctx := context.Background()

	in := validInput()
	in.Title = ""
	_, err := svc.CreateCar(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Missing required field: title", apperr.Message(err))
	assert.Equal(t, 400, apperr.Status(err))

	in = validInput()
	in.Price = 0
	_, err = svc.CreateCar(ctx, in)
	assert.Equal(t, "Price must be a positive number", apperr.Message(err))

	in = validInput()
	in.FuelType = "Steam"
	_, err = svc.CreateCar(ctx, in)
	assert.Equal(t, "Invalid fuel type", apperr.Message(err))

	in = validInput()
	in.Transmission = "CVT-X"
	_, err = svc.CreateCar(ctx, in)
	assert.Equal(t, "Invalid transmission", apperr.Message(err))

	in = validInput()
	in.Images = nil
	_, err = svc.CreateCar(ctx, in)
	assert.Equal(t, "At least one image is required", apperr.Message(err))

	in = validInput()
	in.KmDriven = -1
	_, err = svc.CreateCar(ctx, in)
	assert.Equal(t, "kmDriven must not be negative", apperr.Message(err))
}

func TestGetCarByID_NotFound(t *testing.T) {
	svc, _ := setupCarTest(t)
	_, err := svc.GetCarByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
	assert.Equal(t, "Car not found", apperr.Message(err))
}

func TestFindAvailable_Pagination(t *testing.T) {
	svc, _ := setupCarTest(t)
	ctx := context.Background()

	// 8 matching Hondas under the price ceiling plus two decoys
	for i := 0; i < 8; i++ {
		in := validInput()
		in.Title = fmt.Sprintf("Honda City %d", i)
		in.Brand = "Honda"
		in.Price = 450000
		_, err := svc.CreateCar(ctx, in)
		require.NoError(t, err)
	}
	_, err := svc.CreateCar(ctx, validInput()) // Maruti
	require.NoError(t, err)
	expensive := validInput()
	expensive.Brand = "Honda"
	expensive.Price = 900000
	_, err = svc.CreateCar(ctx, expensive)
	require.NoError(t, err)

	filter := FindFilter{Brand: "Honda", MaxPrice: 500000}

	page1, err := svc.FindAvailable(ctx, filter, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Cars, PageSize)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.CurrentPage)

	page2, err := svc.FindAvailable(ctx, filter, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Cars, 2)
	assert.Equal(t, 2, page2.CurrentPage)

	// Past the end: empty page, requested page echoed
	page9, err := svc.FindAvailable(ctx, filter, 9)
	require.NoError(t, err)
	assert.Empty(t, page9.Cars)
	assert.Equal(t, 2, page9.TotalPages)
	assert.Equal(t, 9, page9.CurrentPage)
}

func TestFindAvailable_ExcludesBookedAndSold(t *testing.T) {
	svc, db := setupCarTest(t)
	ctx := context.Background()

	available, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	booked, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	sold, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Model(booked).Update("status", models.CarStatusBooked).Error)
	require.NoError(t, db.Model(sold).Update("status", models.CarStatusSold).Error)

	page, err := svc.FindAvailable(ctx, FindFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, page.Cars, 1)
	assert.Equal(t, available.CarID, page.Cars[0].CarID)
	assert.Equal(t, 1, page.TotalPages)
}

func TestFindAvailable_Filters(t *testing.T) {
	svc, _ := setupCarTest(t)
	ctx := context.Background()

	cheap := validInput()
	cheap.Brand = "Hyundai"
	cheap.Price = 300000
	_, err := svc.CreateCar(ctx, cheap)
	require.NoError(t, err)

	_, err = svc.CreateCar(ctx, validInput()) // Maruti, 650000
	require.NoError(t, err)

	byBrand, err := svc.FindAvailable(ctx, FindFilter{Brand: "Hyundai"}, 1)
	require.NoError(t, err)
	require.Len(t, byBrand.Cars, 1)
	assert.Equal(t, "Hyundai", byBrand.Cars[0].Brand)

	byPrice, err := svc.FindAvailable(ctx, FindFilter{MaxPrice: 400000}, 1)
	require.NoError(t, err)
	require.Len(t, byPrice.Cars, 1)
	assert.Equal(t, float64(300000), byPrice.Cars[0].Price)

	none, err := svc.FindAvailable(ctx, FindFilter{Brand: "Hyundai", MaxPrice: 100000}, 1)
	require.NoError(t, err)
	assert.Empty(t, none.Cars)
	assert.Equal(t, 0, none.TotalPages)
}

func strPtr(s string) *string { return &s }

func TestUpdateCar_PartialMerge(t *testing.T) {
	svc, _ := setupCarTest(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)

	price := 600000.0
	updated, err := svc.UpdateCar(ctx, car.CarID, UpdateCarInput{
		Price:    &price,
		Location: strPtr("Thrissur"),
	})
	require.NoError(t, err)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, "Thrissur", updated.Location)
	assert.Equal(t, car.Title, updated.Title)
}

func TestUpdateCar_StatusBlockedByOpenBooking(t *testing.T) {
	svc, db := setupCarTest(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Model(car).Update("status", models.CarStatusBooked).Error)
	require.NoError(t, db.Create(&models.Booking{
		UserID:      uuid.New(),
		CarID:       car.CarID,
		TokenAmount: 5000,
		PaymentID:   "pay_1",
		Status:      models.BookingStatusTokenPaid,
	}).Error)

	_, err = svc.UpdateCar(ctx, car.CarID, UpdateCarInput{Status: strPtr(models.CarStatusAvailable)})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))

	// Non-status fields still editable while booked
	_, err = svc.UpdateCar(ctx, car.CarID, UpdateCarInput{Location: strPtr("Kollam")})
	require.NoError(t, err)
}

func TestUpdateCar_StatusEditableAfterBookingCloses(t *testing.T) {
	svc, db := setupCarTest(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Booking{
		UserID:      uuid.New(),
		CarID:       car.CarID,
		TokenAmount: 5000,
		PaymentID:   "pay_1",
		Status:      models.BookingStatusCancelled,
	}).Error)

	updated, err := svc.UpdateCar(ctx, car.CarID, UpdateCarInput{Status: strPtr(models.CarStatusSold)})
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusSold, updated.Status)
}

func TestDeleteCar_BlockedByOpenBooking(t *testing.T) {
	svc, db := setupCarTest(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Booking{
		UserID:      uuid.New(),
		CarID:       car.CarID,
		TokenAmount: 5000,
		PaymentID:   "pay_1",
		Status:      models.BookingStatusInDiscussion,
	}).Error)

	err = svc.DeleteCar(ctx, car.CarID)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))
}

func TestDeleteCar_ClosedBookingsOK(t *testing.T) {
	svc, db := setupCarTest(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Booking{
		UserID:      uuid.New(),
		CarID:       car.CarID,
		TokenAmount: 5000,
		PaymentID:   "pay_1",
		Status:      models.BookingStatusRefunded,
	}).Error)

	require.NoError(t, svc.DeleteCar(ctx, car.CarID))

	_, err = svc.GetCarByID(ctx, car.CarID)
	assert.Equal(t, 404, apperr.Status(err))
}
