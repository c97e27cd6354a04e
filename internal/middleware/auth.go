package middleware

import (
	"fmt"

	"caromotors-backend/internal/models"
	"caromotors-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader carries the JWT on every authenticated request.
const TokenHeader = "x-auth-token"

const authUserLocal = "auth_user"

// AuthUser is the verified caller identity extracted from the token.
type AuthUser struct {
	UserID string
	Role   string
}

// RequireAuth verifies the x-auth-token JWT and stores the caller identity
// in Locals. Returns 401 in the standard error format on any failure.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get(TokenHeader)
		if tokenStr == "" {
			return response.Unauthorized(c, "No token, authorization denied")
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "Token is not valid")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "Token is not valid")
		}
		userClaim, ok := claims["user"].(map[string]interface{})
		if !ok {
			return response.Unauthorized(c, "Token is not valid")
		}
		id, _ := userClaim["id"].(string)
		role, _ := userClaim["role"].(string)
		if id == "" {
			return response.Unauthorized(c, "Token is not valid")
		}

		c.Locals(authUserLocal, &AuthUser{UserID: id, Role: role})
		return c.Next()
	}
}

// RequireAdmin allows only admin-role callers. RequireAuth must run first.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetAuthUser(c)
		if u == nil || u.Role != models.RoleAdmin {
			return response.Error(c, "Access denied. Admins only.", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// GetAuthUser returns the verified caller identity (nil if unauthenticated).
func GetAuthUser(c *fiber.Ctx) *AuthUser {
	u, _ := c.Locals(authUserLocal).(*AuthUser)
	return u
}
