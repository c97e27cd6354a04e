package payments

import (
	"fmt"
	"math"
	"time"

	"caromotors-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Creator OrderCreator
}

type createOrderRequest struct {
	Amount float64 `json:"amount"`
}

// CreateOrder POST /api/v1/payment/order creates a Razorpay order for the
// token amount. Amount arrives in INR; Razorpay wants paise.
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil || req.Amount == 0 {
		return response.Error(c, "Amount is required", 400, nil)
	}
	if req.Amount <= 0 {
		return response.Error(c, "Amount must be a positive number", 400, nil)
	}
	if h.Creator == nil {
		return response.Error(c, "Payment gateway not configured", 500, nil)
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := h.Creator.CreateOrder(int64(math.Round(req.Amount*100)), "INR", receipt)
	if err != nil {
		return response.Error(c, "Failed to create payment order", 500, nil)
	}
	return response.Success(c, "Order created", order, nil)
}
