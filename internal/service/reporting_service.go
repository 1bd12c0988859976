package service

import (
	"context"
	"sort"
	"time"

	"github.com/eventdesk/eventdesk/internal/repository"
)

// EventSales is one row of the top-selling-events report.
type EventSales struct {
	EventID   int64  `json:"event_id"`
	Title     string `json:"title"`
	SeatsSold int    `json:"seats_sold"`
}

// CustomerBookings is one row of the bookings-per-customer reports.
type CustomerBookings struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Bookings   int    `json:"bookings"`
}

// ReportingService answers read-only aggregations over bookings. The
// gateway offers equality-filtered lists only, so all grouping happens
// in memory, like the rest of the read side.
type ReportingService struct {
	bookings  *repository.BookingRepo
	events    *repository.EventRepo
	customers *repository.CustomerRepo
	now       func() time.Time
}

// NewReportingService constructs a ReportingService.
func NewReportingService(bookings *repository.BookingRepo, events *repository.EventRepo, customers *repository.CustomerRepo) *ReportingService {
	return &ReportingService{
		bookings:  bookings,
		events:    events,
		customers: customers,
		now:       time.Now,
	}
}

// TopSellingEvents groups all bookings (any status) by event, sums seats
// and returns the top limit events by seats sold. Ties keep the stable
// first-seen order of the booking list. limit defaults to 5.
func (s *ReportingService) TopSellingEvents(ctx context.Context, limit int) ([]EventSales, error) {
	if limit <= 0 {
		limit = 5
	}
	bookings, err := s.bookings.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	seats := make(map[int64]int)
	order := make([]int64, 0)
	for _, b := range bookings {
		if _, seen := seats[b.EventID]; !seen {
			order = append(order, b.EventID)
		}
		seats[b.EventID] += b.Seats
	}
	sort.SliceStable(order, func(i, j int) bool {
		return seats[order[i]] > seats[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]EventSales, 0, len(order))
	for _, eventID := range order {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		out = append(out, EventSales{EventID: eventID, Title: event.Title, SeatsSold: seats[eventID]})
	}
	return out, nil
}

// TotalRevenueLastMonth sums seats times current event price over all
// bookings created in the trailing 30 days. The window is trailing, not
// calendar-month.
func (s *ReportingService) TotalRevenueLastMonth(ctx context.Context) (float64, error) {
	bookings, err := s.bookings.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().UTC().AddDate(0, 0, -30)

	prices := make(map[int64]float64)
	revenue := 0.0
	for _, b := range bookings {
		if b.CreatedAt.Before(cutoff) {
			continue
		}
		price, ok := prices[b.EventID]
		if !ok {
			event, err := s.events.GetByID(ctx, b.EventID)
			if err != nil {
				return 0, err
			}
			price = event.Price
			prices[b.EventID] = price
		}
		revenue += float64(b.Seats) * price
	}
	return revenue, nil
}

// TotalBookingsPerCustomer counts bookings of any status per customer.
func (s *ReportingService) TotalBookingsPerCustomer(ctx context.Context) ([]CustomerBookings, error) {
	return s.bookingsPerCustomer(ctx, 0)
}

// CustomersWithMultipleBookings filters the per-customer counts to those
// strictly greater than min. min defaults to 2.
func (s *ReportingService) CustomersWithMultipleBookings(ctx context.Context, min int) ([]CustomerBookings, error) {
	if min <= 0 {
		min = 2
	}
	return s.bookingsPerCustomer(ctx, min)
}

func (s *ReportingService) bookingsPerCustomer(ctx context.Context, min int) ([]CustomerBookings, error) {
	bookings, err := s.bookings.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	order := make([]int64, 0)
	for _, b := range bookings {
		if _, seen := counts[b.CustomerID]; !seen {
			order = append(order, b.CustomerID)
		}
		counts[b.CustomerID]++
	}

	out := make([]CustomerBookings, 0, len(order))
	for _, customerID := range order {
		if counts[customerID] <= min && min > 0 {
			continue
		}
		customer, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		out = append(out, CustomerBookings{
			CustomerID: customerID,
			Name:       customer.Name,
			Bookings:   counts[customerID],
		})
	}
	return out, nil
}
