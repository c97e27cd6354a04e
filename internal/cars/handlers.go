package cars

import (
	"strconv"

	"caromotors-backend/internal/pkg/apperr"
	"caromotors-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GetAllCars GET /api/v1/cars?brand=&maxPrice=&page=
// Public browse: available cars only, dealer fields stripped. The response
// shape {cars, totalPages, currentPage} is the frontend contract.
func (h *Handlers) GetAllCars(c *fiber.Ctx) error {
	page := 1
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return response.Error(c, "Invalid page number", 400, nil)
		}
		page = v
	}

	filter := FindFilter{Brand: c.Query("brand")}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return response.Error(c, "Invalid maxPrice", 400, nil)
		}
		filter.MaxPrice = v
	}

	result, err := h.Service.FindAvailable(c.Context(), filter, page)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}

	return c.JSON(fiber.Map{
		"cars":        ToPublicViews(result.Cars),
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
	})
}

// GetCarByID GET /api/v1/cars/:id is the public detail view, dealer fields stripped.
func (h *Handlers) GetCarByID(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Car not found", 404, nil)
	}

	car, err := h.Service.GetCarByID(c.Context(), carID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return c.JSON(ToPublicView(*car))
}

// GetAllCarsAdmin GET /api/v1/cars/admin/all lists all statuses with dealer fields.
func (h *Handlers) GetAllCarsAdmin(c *fiber.Ctx) error {
	cars, err := h.Service.GetAllCarsAdmin(c.Context())
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Cars fetched successfully", cars, nil)
}

// GetCarByIDAdmin GET /api/v1/cars/admin/:id
func (h *Handlers) GetCarByIDAdmin(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Car not found", 404, nil)
	}

	car, err := h.Service.GetCarByID(c.Context(), carID)
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Car fetched successfully", car, nil)
}

type carRequest struct {
	Title        string   `json:"title"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Price        float64  `json:"price"`
	Year         int      `json:"year"`
	FuelType     string   `json:"fuelType"`
	Transmission string   `json:"transmission"`
	KmDriven     int      `json:"kmDriven"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Ownership    string   `json:"ownership"`
	Images       []string `json:"images"`
	TokenAmount  float64  `json:"tokenAmount"`
	Category     string   `json:"category"`
	DealerID     string   `json:"dealerId"`
	DealerName   string   `json:"dealerName"`
	DealerPhone  string   `json:"dealerPhone"`
	DealerPlace  string   `json:"dealerPlace"`
}

// CreateCar POST /api/v1/cars (admin). Any supplied status is ignored; new
// listings always start available.
func (h *Handlers) CreateCar(c *fiber.Ctx) error {
	var req carRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	car, err := h.Service.CreateCar(c.Context(), CreateCarInput{
		Title:        req.Title,
		Brand:        req.Brand,
		Model:        req.Model,
		Price:        req.Price,
		Year:         req.Year,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		KmDriven:     req.KmDriven,
		Location:     req.Location,
		Description:  req.Description,
		Ownership:    req.Ownership,
		Images:       req.Images,
		TokenAmount:  req.TokenAmount,
		Category:     req.Category,
		DealerID:     req.DealerID,
		DealerName:   req.DealerName,
		DealerPhone:  req.DealerPhone,
		DealerPlace:  req.DealerPlace,
	})
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Car created successfully", car, nil)
}

type updateCarRequest struct {
	Title        *string  `json:"title"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Price        *float64 `json:"price"`
	Year         *int     `json:"year"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	KmDriven     *int     `json:"kmDriven"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	Ownership    *string  `json:"ownership"`
	Images       []string `json:"images"`
	TokenAmount  *float64 `json:"tokenAmount"`
	Category     *string  `json:"category"`
	Status       *string  `json:"status"`
	DealerID     *string  `json:"dealerId"`
	DealerName   *string  `json:"dealerName"`
	DealerPhone  *string  `json:"dealerPhone"`
	DealerPlace  *string  `json:"dealerPlace"`
}

// UpdateCar PUT /api/v1/cars/:id (admin)
func (h *Handlers) UpdateCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Car not found", 404, nil)
	}
	var req updateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	car, err := h.Service.UpdateCar(c.Context(), carID, UpdateCarInput{
		Title:        req.Title,
		Brand:        req.Brand,
		Model:        req.Model,
		Price:        req.Price,
		Year:         req.Year,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		KmDriven:     req.KmDriven,
		Location:     req.Location,
		Description:  req.Description,
		Ownership:    req.Ownership,
		Images:       req.Images,
		TokenAmount:  req.TokenAmount,
		Category:     req.Category,
		Status:       req.Status,
		DealerID:     req.DealerID,
		DealerName:   req.DealerName,
		DealerPhone:  req.DealerPhone,
		DealerPlace:  req.DealerPlace,
	})
	if err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Car updated successfully", car, nil)
}

// DeleteCar DELETE /api/v1/cars/:id (admin)
func (h *Handlers) DeleteCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Car not found", 404, nil)
	}

	if err := h.Service.DeleteCar(c.Context(), carID); err != nil {
		return response.Error(c, apperr.Message(err), apperr.Status(err), nil)
	}
	return response.Success(c, "Car removed", nil, nil)
}
