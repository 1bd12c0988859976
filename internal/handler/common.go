// Package handler contains the HTTP dashboard handlers. Handlers bind
// and shape-check input, call the domain services and translate their
// typed failures into HTTP statuses; all business rules live below.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/service"
)

// pathID parses the ":id" path parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// fail maps a service error to the matching HTTP response.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrPaymentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrAlreadyRefunded),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicatePayment):
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// listLimit reads the optional ?limit query parameter, defaulting to 100.
func listLimit(c echo.Context) int {
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 100
}
