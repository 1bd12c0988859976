package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/service"
)

// PaymentHandler exposes payment endpoints, addressed by booking id since
// each booking has exactly one payment.
type PaymentHandler struct {
	Payments *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// Get handles GET /v1/bookings/:id/payment.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}
	payment, err := h.Payments.GetByBooking(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Process handles POST /v1/bookings/:id/payment/process. The method is
// constrained to the values the dashboard offers.
func (h *PaymentHandler) Process(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}
	var body struct {
		Method string `json:"method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	method := strings.TrimSpace(body.Method)
	switch method {
	case "Cash", "Card", "UPI":
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "method must be Cash, Card or UPI"})
	}
	payment, err := h.Payments.Process(c.Request().Context(), id, method)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Refund handles POST /v1/bookings/:id/payment/refund.
func (h *PaymentHandler) Refund(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
	}
	payment, err := h.Payments.Refund(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.Payments.List(c.Request().Context(), listLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}
