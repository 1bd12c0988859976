package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/service"
)

// BookingHandler exposes the booking workflow endpoints.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		CustomerID int64 `json:"customer_id"`
		EventID    int64 `json:"event_id"`
		Seats      int   `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.CustomerID <= 0 || body.EventID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "customer_id and event_id are required"})
	}
	booking, err := h.Bookings.Book(c.Request().Context(), body.CustomerID, body.EventID, body.Seats)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.List(c.Request().Context(), listLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.Cancel(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}
