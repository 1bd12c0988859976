// Package router registers the dashboard API routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/handler"
)

// Handlers groups the constructed handlers for registration.
type Handlers struct {
	Customers *handler.CustomerHandler
	Events    *handler.EventHandler
	Bookings  *handler.BookingHandler
	Payments  *handler.PaymentHandler
	Reports   *handler.ReportHandler
}

// RegisterRoutes maps all API routes. cacheMW, when non-nil, is applied
// to the read-only report routes only; write paths must never be cached.
func RegisterRoutes(e *echo.Echo, h Handlers, cacheMW echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	v1.POST("/customers", h.Customers.Create)
	v1.GET("/customers", h.Customers.List)
	v1.GET("/customers/:id", h.Customers.Get)
	v1.PATCH("/customers/:id", h.Customers.Update)
	v1.DELETE("/customers/:id", h.Customers.Delete)

	v1.POST("/events", h.Events.Create)
	v1.GET("/events", h.Events.List)
	v1.GET("/events/:id", h.Events.Get)
	v1.GET("/events/:id/availability", h.Events.Availability)
	v1.PATCH("/events/:id", h.Events.Update)
	v1.DELETE("/events/:id", h.Events.Delete)

	v1.POST("/bookings", h.Bookings.Create)
	v1.GET("/bookings", h.Bookings.List)
	v1.GET("/bookings/:id", h.Bookings.Get)
	v1.POST("/bookings/:id/cancel", h.Bookings.Cancel)

	v1.GET("/bookings/:id/payment", h.Payments.Get)
	v1.POST("/bookings/:id/payment/process", h.Payments.Process)
	v1.POST("/bookings/:id/payment/refund", h.Payments.Refund)
	v1.GET("/payments", h.Payments.List)

	reports := v1.Group("/reports")
	if cacheMW != nil {
		reports.Use(cacheMW)
	}
	reports.GET("/top-events", h.Reports.TopSellingEvents)
	reports.GET("/revenue", h.Reports.Revenue)
	reports.GET("/bookings-per-customer", h.Reports.BookingsPerCustomer)
	reports.GET("/repeat-customers", h.Reports.RepeatCustomers)
}
