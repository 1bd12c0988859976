// Line-mode console front end. It talks to the same domain services as
// the dashboard; only the presentation differs.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/service"
	"github.com/eventdesk/eventdesk/internal/store"
)

type console struct {
	in        *bufio.Scanner
	customers *service.CustomerService
	events    *service.EventService
	bookings  *service.BookingService
	payments  *service.PaymentService
	reports   *service.ReportingService
}

func main() {
	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	gateway := store.NewMySQL(db)
	customerRepo := repository.NewCustomerRepo(gateway)
	eventRepo := repository.NewEventRepo(gateway)
	bookingRepo := repository.NewBookingRepo(gateway)
	paymentRepo := repository.NewPaymentRepo(gateway)

	paymentSvc := service.NewPaymentService(paymentRepo)
	app := &console{
		in:        bufio.NewScanner(os.Stdin),
		customers: service.NewCustomerService(customerRepo),
		events:    service.NewEventService(eventRepo, bookingRepo, paymentRepo),
		bookings:  service.NewBookingService(bookingRepo, eventRepo, customerRepo, paymentSvc, nil),
		payments:  paymentSvc,
		reports:   service.NewReportingService(bookingRepo, eventRepo, customerRepo),
	}
	app.run()
}

func (a *console) run() {
	for {
		fmt.Println("\n--- Event Booking Back Office ---")
		fmt.Println("1. Customers")
		fmt.Println("2. Events")
		fmt.Println("3. Book event")
		fmt.Println("4. Cancel booking")
		fmt.Println("5. Payments")
		fmt.Println("6. Reports")
		fmt.Println("0. Exit")
		switch a.prompt("Choice") {
		case "1":
			a.customerMenu()
		case "2":
			a.eventMenu()
		case "3":
			a.bookEvent()
		case "4":
			a.cancelBooking()
		case "5":
			a.paymentMenu()
		case "6":
			a.reportMenu()
		case "0":
			return
		default:
			fmt.Println("invalid choice")
		}
	}
}

func (a *console) customerMenu() {
	fmt.Println("\n1. Add  2. List  3. Delete  0. Back")
	ctx := context.Background()
	switch a.prompt("Choice") {
	case "1":
		in := service.CreateCustomerInput{
			Name:  a.prompt("Name"),
			Email: a.prompt("Email"),
			Phone: a.prompt("Phone"),
		}
		if city := a.prompt("City (optional)"); city != "" {
			in.City = &city
		}
		customer, err := a.customers.Create(ctx, in)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("added customer #%d\n", customer.ID)
	case "2":
		customers, err := a.customers.List(ctx, 100)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, c := range customers {
			city := "-"
			if c.City != nil {
				city = *c.City
			}
			fmt.Printf("#%d  %s  %s  %s  %s\n", c.ID, c.Name, c.Email, c.Phone, city)
		}
	case "3":
		id, ok := a.promptID("Customer id")
		if !ok {
			return
		}
		if _, err := a.customers.Delete(ctx, id); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("deleted")
	}
}

func (a *console) eventMenu() {
	fmt.Println("\n1. Add  2. List  3. Delete  0. Back")
	ctx := context.Background()
	switch a.prompt("Choice") {
	case "1":
		date, err := time.Parse("2006-01-02", a.prompt("Date (YYYY-MM-DD)"))
		if err != nil {
			fmt.Println("error: invalid date")
			return
		}
		capacity, err1 := strconv.Atoi(a.prompt("Capacity"))
		price, err2 := strconv.ParseFloat(a.prompt("Price"), 64)
		if err1 != nil || err2 != nil {
			fmt.Println("error: capacity and price must be numbers")
			return
		}
		event, err := a.events.Create(ctx, service.CreateEventInput{
			Title:    a.prompt("Title"),
			Date:     date,
			Location: a.prompt("Location"),
			Capacity: capacity,
			Price:    price,
		})
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("added event #%d\n", event.ID)
	case "2":
		events, err := a.events.List(ctx, 100)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, e := range events {
			remaining, err := a.events.Remaining(ctx, e.ID)
			if err != nil {
				fmt.Println("error:", err)
				return
			}
			fmt.Printf("#%d  %s  %s  %s  %d/%d seats free  %.2f\n",
				e.ID, e.Title, e.Date.Format("2006-01-02"), e.Location, remaining, e.Capacity, e.Price)
		}
	case "3":
		id, ok := a.promptID("Event id")
		if !ok {
			return
		}
		if _, err := a.events.Delete(ctx, id); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("deleted (bookings and payments resolved)")
	}
}

func (a *console) bookEvent() {
	ctx := context.Background()
	customerID, ok := a.promptID("Customer id")
	if !ok {
		return
	}
	eventID, ok := a.promptID("Event id")
	if !ok {
		return
	}
	seats, err := strconv.Atoi(a.prompt("Seats"))
	if err != nil {
		fmt.Println("error: seats must be a number")
		return
	}
	booking, err := a.bookings.Book(ctx, customerID, eventID, seats)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	payment, err := a.payments.GetByBooking(ctx, booking.ID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("booked #%d, payment pending: %.2f\n", booking.ID, payment.Amount)
}

func (a *console) cancelBooking() {
	id, ok := a.promptID("Booking id")
	if !ok {
		return
	}
	booking, err := a.bookings.Cancel(context.Background(), id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("booking #%d is now %s\n", booking.ID, booking.Status)
}

func (a *console) paymentMenu() {
	fmt.Println("\n1. Process  2. Refund  3. List  0. Back")
	ctx := context.Background()
	switch a.prompt("Choice") {
	case "1":
		id, ok := a.promptID("Booking id")
		if !ok {
			return
		}
		payment, err := a.payments.Process(ctx, id, a.prompt("Method (Cash/Card/UPI)"))
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("payment #%d is now %s\n", payment.ID, payment.Status)
	case "2":
		id, ok := a.promptID("Booking id")
		if !ok {
			return
		}
		payment, err := a.payments.Refund(ctx, id)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("payment #%d is now %s\n", payment.ID, payment.Status)
	case "3":
		payments, err := a.payments.List(ctx, 100)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, p := range payments {
			method := "-"
			if p.Method != nil {
				method = *p.Method
			}
			fmt.Printf("#%d  booking %d  %.2f  %s  %s\n", p.ID, p.BookingID, p.Amount, method, p.Status)
		}
	}
}

func (a *console) reportMenu() {
	fmt.Println("\n1. Top events  2. Revenue (30d)  3. Bookings per customer  4. Repeat customers  0. Back")
	ctx := context.Background()
	switch a.prompt("Choice") {
	case "1":
		rows, err := a.reports.TopSellingEvents(ctx, 5)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, r := range rows {
			fmt.Printf("%s: %d seats sold\n", r.Title, r.SeatsSold)
		}
	case "2":
		total, err := a.reports.TotalRevenueLastMonth(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("revenue last 30 days: %.2f\n", total)
	case "3":
		rows, err := a.reports.TotalBookingsPerCustomer(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, r := range rows {
			fmt.Printf("%s: %d bookings\n", r.Name, r.Bookings)
		}
	case "4":
		rows, err := a.reports.CustomersWithMultipleBookings(ctx, 2)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, r := range rows {
			fmt.Printf("%s: %d bookings\n", r.Name, r.Bookings)
		}
	}
}

func (a *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *console) promptID(label string) (int64, bool) {
	id, err := strconv.ParseInt(a.prompt(label), 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("error: invalid id")
		return 0, false
	}
	return id, true
}
