package auth

import (
	"caromotors-backend/internal/middleware"
	"caromotors-backend/internal/pkg/apperr"
	"caromotors-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service   *Service
	JWTSecret string
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Name, email and password are required", 400, nil)
	}

	user, err := h.Service.Register(c.Context(), RegisterInput(req))
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}

	token, err := SignToken(h.JWTSecret, user)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "User registered successfully", fiber.Map{"token": token}, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", 400, nil)
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}

	token, err := SignToken(h.JWTSecret, user)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{"token": token}, nil)
}

// Me GET /api/v1/auth/me returns the account with the wishlist populated.
func (h *Handlers) Me(c *fiber.Ctx) error {
	actor := middleware.GetAuthUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Token is not valid")
	}

	me, err := h.Service.Me(c.Context(), userID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "User fetched successfully", me, nil)
}

// ListUsers GET /api/v1/auth/users (admin)
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.Service.ListUsers(c.Context())
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Users fetched successfully", users, nil)
}

// ToggleWishlist PUT /api/v1/auth/wishlist/:car_id
func (h *Handlers) ToggleWishlist(c *fiber.Ctx) error {
	actor := middleware.GetAuthUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Token is not valid")
	}
	carID, err := uuid.Parse(c.Params("car_id"))
	if err != nil {
		return response.Error(c, "Invalid car id format (must be a valid UUID)", 400, nil)
	}

	wishlist, err := h.Service.ToggleWishlist(c.Context(), userID, carID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Wishlist updated", wishlist, nil)
}
