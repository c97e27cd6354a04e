package bookings

import (
	"caromotors-backend/internal/middleware"
	"caromotors-backend/internal/pkg/apperr"
	"caromotors-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createBookingRequest struct {
	CarID       string  `json:"carId"`
	TokenAmount float64 `json:"tokenAmount"`
	PaymentID   string  `json:"paymentId"`
}

// CreateBooking POST /api/v1/bookings is called after payment success.
func (h *Handlers) CreateBooking(c *fiber.Ctx) error {
	actor := middleware.GetAuthUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Token is not valid")
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "carId, tokenAmount and paymentId are required", 400, nil)
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return response.Error(c, "Invalid car id format (must be a valid UUID)", 400, nil)
	}

	booking, err := h.Service.CreateBooking(c.Context(), userID, carID, req.TokenAmount, req.PaymentID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Booking created successfully", booking, nil)
}

// MyBookings GET /api/v1/bookings/my
func (h *Handlers) MyBookings(c *fiber.Ctx) error {
	actor := middleware.GetAuthUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Token is not valid")
	}

	views, err := h.Service.ListForCustomer(c.Context(), userID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Bookings fetched successfully", views, nil)
}

// GetAllBookings GET /api/v1/bookings (admin)
func (h *Handlers) GetAllBookings(c *fiber.Ctx) error {
	views, err := h.Service.ListAll(c.Context())
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Bookings fetched successfully", views, nil)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingStatus PUT /api/v1/bookings/:id (admin)
func (h *Handlers) UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Booking not found", 404, nil)
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return response.Error(c, "status is required", 400, nil)
	}

	booking, err := h.Service.UpdateStatus(c.Context(), bookingID, req.Status)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Booking status updated", booking, nil)
}
