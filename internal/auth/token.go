package auth

import (
	"time"

	"caromotors-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// SignToken issues the 7-day HS256 JWT carrying the user id and role under
// the "user" claim.
func SignToken(secret string, u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user": map[string]interface{}{
			"id":   u.UserID.String(),
			"role": u.Role,
		},
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
