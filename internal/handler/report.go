package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/service"
)

// ReportHandler exposes the read-only reporting endpoints. These are the
// routes the response cache sits in front of.
type ReportHandler struct {
	Reports *service.ReportingService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reports *service.ReportingService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// TopSellingEvents handles GET /v1/reports/top-events?limit=N.
func (h *ReportHandler) TopSellingEvents(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = n
	}
	rows, err := h.Reports.TopSellingEvents(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Revenue handles GET /v1/reports/revenue (trailing 30 days).
func (h *ReportHandler) Revenue(c echo.Context) error {
	total, err := h.Reports.TotalRevenueLastMonth(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"revenue": total})
}

// BookingsPerCustomer handles GET /v1/reports/bookings-per-customer.
func (h *ReportHandler) BookingsPerCustomer(c echo.Context) error {
	rows, err := h.Reports.TotalBookingsPerCustomer(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// RepeatCustomers handles GET /v1/reports/repeat-customers?min=N.
func (h *ReportHandler) RepeatCustomers(c echo.Context) error {
	min := 0
	if v := c.QueryParam("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "min must be a positive integer"})
		}
		min = n
	}
	rows, err := h.Reports.CustomersWithMultipleBookings(c.Request().Context(), min)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
