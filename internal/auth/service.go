package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/apperr"
	"caromotors-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const bcryptCost = 10

type Service struct {
	DB *gorm.DB
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user-role account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("Name, email and password are required")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, apperr.Validation("Invalid email format")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, apperr.Validation("Password must be at least 8 characters with a letter, a number and a special character")
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Wishlist:     datatypes.JSON([]byte("[]")),
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. The same message covers unknown email and
// wrong password so the endpoint does not reveal which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Invalid Credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Validation("Invalid Credentials")
	}
	return &user, nil
}

// MeView is the /me response: the account without credentials, with the
// wishlist populated with full car records.
type MeView struct {
	UserID    uuid.UUID    `json:"user_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Wishlist  []models.Car `json:"wishlist"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Me returns the caller's account with the wishlist ids resolved to cars.
// Ids pointing at deleted cars are silently dropped.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*MeView, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	ids := wishlistIDs(user.Wishlist)
	cars := []models.Car{}
	if len(ids) > 0 {
		if err := s.DB.WithContext(ctx).Where("car_id IN ?", ids).Find(&cars).Error; err != nil {
			return nil, err
		}
	}

	return &MeView{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Wishlist:  cars,
		CreatedAt: user.CreatedAt,
	}, nil
}

// ListUsers returns all accounts (password hashes are never serialized).
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ToggleWishlist adds the car id to the user's wishlist, or removes it when
// already present. Returns the updated id list.
func (s *Service) ToggleWishlist(ctx context.Context, userID, carID uuid.UUID) ([]string, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	ids := wishlistIDs(user.Wishlist)
	updated := make([]string, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == carID.String() {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, carID.String())
	}

	b, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&user).Update("wishlist", datatypes.JSON(b)).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

func wishlistIDs(raw datatypes.JSON) []string {
	var ids []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ids)
	}
	return ids
}
