package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/eventdesk/internal/service"
)

const dateLayout = "2006-01-02"

// EventHandler exposes event management endpoints.
type EventHandler struct {
	Events *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	var body struct {
		Title    string  `json:"title"`
		Date     string  `json:"date"`
		Location string  `json:"location"`
		Capacity int     `json:"capacity"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
	}
	event, err := h.Events.Create(c.Request().Context(), service.CreateEventInput{
		Title:    body.Title,
		Date:     date,
		Location: body.Location,
		Capacity: body.Capacity,
		Price:    body.Price,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// List handles GET /v1/events with optional title/location/date filters.
func (h *EventHandler) List(c echo.Context) error {
	var title, location *string
	var date *time.Time
	if v := c.QueryParam("title"); v != "" {
		title = &v
	}
	if v := c.QueryParam("location"); v != "" {
		location = &v
	}
	if v := c.QueryParam("date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		}
		date = &d
	}
	if title != nil || location != nil || date != nil {
		events, err := h.Events.Search(c.Request().Context(), title, location, date)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, events)
	}
	events, err := h.Events.List(c.Request().Context(), listLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
	}
	event, err := h.Events.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// Availability handles GET /v1/events/:id/availability, returning the
// derived remaining capacity.
func (h *EventHandler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
	}
	remaining, err := h.Events.Remaining(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"event_id": id, "remaining": remaining})
}

// Update handles PATCH /v1/events/:id.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
	}
	var body struct {
		Title    *string  `json:"title"`
		Date     *string  `json:"date"`
		Location *string  `json:"location"`
		Capacity *int     `json:"capacity"`
		Price    *float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	in := service.UpdateEventInput{
		Title:    body.Title,
		Location: body.Location,
		Capacity: body.Capacity,
		Price:    body.Price,
	}
	if body.Date != nil {
		d, err := time.Parse(dateLayout, *body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		}
		in.Date = &d
	}
	event, err := h.Events.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /v1/events/:id. Dependent bookings and payments
// are auto-resolved before the event row is removed.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event id"})
	}
	event, err := h.Events.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event)
}
