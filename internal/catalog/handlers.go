package catalog

import (
	"github.com/gofiber/fiber/v2"

	"caromotors-backend/internal/pkg/apperr"
	"caromotors-backend/internal/pkg/response"
)

type Handlers struct {
	Store *Store
}

func NewHandlers(store *Store) *Handlers {
	return &Handlers{Store: store}
}

// ListCategories returns built-in and custom categories plus the price
// buckets. Public, no auth.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	custom, err := h.Store.CustomCategories(c.Context())
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Categories retrieved", fiber.Map{
		"categories":  AllCategories(custom),
		"priceRanges": PriceRanges(),
	}, nil)
}

type categoryRequest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	created, err := h.Store.SaveCustomCategory(c.Context(), CustomCategory{
		ID:    req.ID,
		Label: req.Label,
		Desc:  req.Desc,
	})
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Category created", created, nil)
}

func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	if err := h.Store.DeleteCustomCategory(c.Context(), c.Params("id")); err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Category deleted", nil, nil)
}

func (h *Handlers) ListDealers(c *fiber.Ctx) error {
	dealers, err := h.Store.Dealers(c.Context())
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Dealers retrieved", dealers, nil)
}

type dealerRequest struct {
	Name  string `json:"name"`
	Place string `json:"place"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (h *Handlers) CreateDealer(c *fiber.Ctx) error {
	var req dealerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	created, err := h.Store.SaveDealer(c.Context(), Dealer{
		Name:  req.Name,
		Place: req.Place,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Dealer created", created, nil)
}

type dealerUpdateRequest struct {
	Name  *string `json:"name"`
	Place *string `json:"place"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

func (h *Handlers) UpdateDealer(c *fiber.Ctx) error {
	var req dealerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	updated, err := h.Store.UpdateDealer(c.Context(), c.Params("id"), DealerPatch{
		Name:  req.Name,
		Place: req.Place,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Dealer updated", updated, nil)
}

func (h *Handlers) DeleteDealer(c *fiber.Ctx) error {
	if err := h.Store.DeleteDealer(c.Context(), c.Params("id")); err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Dealer deleted", nil, nil)
}
