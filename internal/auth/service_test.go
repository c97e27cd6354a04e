package auth

import (
	"context"
	"testing"

	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Car{}, &models.Booking{}))
	return &Service{DB: db}, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "sekret1!x",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "sekret1!x", user.PasswordHash)

	got, err := svc.Login(ctx, "asha@example.com", "sekret1!x")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	in := RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "sekret1!x"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))
	assert.Equal(t, "User already exists", apperr.Message(err))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "", Password: "sekret1!x"})
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.Register(ctx, RegisterInput{Name: "Asha", Email: "not-an-email", Password: "sekret1!x"})
	assert.Equal(t, "Invalid email format", apperr.Message(err))

	// Too short, no digit, no special char
	for _, pw := range []string{"short1!", "nodigits!!", "nospecial11"} {
		_, err = svc.Register(ctx, RegisterInput{Name: "Asha", Email: "a@b.co", Password: pw})
		require.Error(t, err, pw)
		assert.Equal(t, 400, apperr.Status(err), pw)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "sekret1!x"})
	require.NoError(t, err)

	// Unknown email and wrong password produce the same message
	_, err = svc.Login(ctx, "unknown@example.com", "sekret1!x")
	assert.Equal(t, "Invalid Credentials", apperr.Message(err))

	_, err = svc.Login(ctx, "asha@example.com", "wrongpass1!")
	assert.Equal(t, "Invalid Credentials", apperr.Message(err))
}

func TestToggleWishlist_AddAndRemove(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "sekret1!x"})
	require.NoError(t, err)
	carID := uuid.New()

	ids, err := svc.ToggleWishlist(ctx, user.UserID, carID)
	require.NoError(t, err)
	assert.Equal(t, []string{carID.String()}, ids)

	ids, err = svc.ToggleWishlist(ctx, user.UserID, carID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMe_ResolvesWishlistDroppingDangling(t *testing.T) {
	svc, db := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "sekret1!x"})
	require.NoError(t, err)

	car := &models.Car{
		Title:        "Honda City",
		Brand:        "Honda",
		Model:        "City",
		Price:        850000,
		Year:         2019,
		FuelType:     "Petrol",
		Transmission: "Manual",
		Location:     "Kochi",
		Description:  "d",
		Images:       datatypes.JSON(`["a.jpg"]`),
		TokenAmount:  5000,
		Status:       models.CarStatusAvailable,
	}
	require.NoError(t, db.Create(car).Error)

	_, err = svc.ToggleWishlist(ctx, user.UserID, car.CarID)
	require.NoError(t, err)
	_, err = svc.ToggleWishlist(ctx, user.UserID, uuid.New()) // dangling id
	require.NoError(t, err)

	me, err := svc.Me(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, me.Wishlist, 1)
	assert.Equal(t, car.CarID, me.Wishlist[0].CarID)
}

func TestMe_UserNotFound(t *testing.T) {
	svc, _ := setupAuthTest(t)
	_, err := svc.Me(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
}
