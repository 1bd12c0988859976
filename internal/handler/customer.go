package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/service"
)

// CustomerHandler exposes customer management endpoints.
type CustomerHandler struct {
	Customers *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{Customers: customers}
}

// Create handles POST /v1/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var body struct {
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Phone string  `json:"phone"`
		City  *string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	customer, err := h.Customers.Create(c.Request().Context(), service.CreateCustomerInput{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
		City:  body.City,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// List handles GET /v1/customers with optional email/city filters.
func (h *CustomerHandler) List(c echo.Context) error {
	var email, city *string
	if v := c.QueryParam("email"); v != "" {
		email = &v
	}
	if v := c.QueryParam("city"); v != "" {
		city = &v
	}
	if email != nil || city != nil {
		customers, err := h.Customers.Search(c.Request().Context(), email, city)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, customers)
	}
	customers, err := h.Customers.List(c.Request().Context(), listLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
	}
	customer, err := h.Customers.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Update handles PATCH /v1/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
	}
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		City  *string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	customer, err := h.Customers.Update(c.Request().Context(), id, service.UpdateCustomerInput{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
		City:  body.City,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /v1/customers/:id.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
	}
	customer, err := h.Customers.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}
