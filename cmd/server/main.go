// Entry point for the dashboard API server.
package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/internal/handler"
	"github.com/eventdesk/eventdesk/internal/middleware"
	"github.com/eventdesk/eventdesk/internal/queue"
	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/router"
	"github.com/eventdesk/eventdesk/internal/service"
	"github.com/eventdesk/eventdesk/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	log.Println("connected to record store")

	// The gateway instance is constructed here and injected everywhere;
	// nothing reaches for a process-wide handle.
	gateway := store.NewMySQL(db)

	customerRepo := repository.NewCustomerRepo(gateway)
	eventRepo := repository.NewEventRepo(gateway)
	bookingRepo := repository.NewBookingRepo(gateway)
	paymentRepo := repository.NewPaymentRepo(gateway)

	var publisher service.Publisher
	if cfg.QueueEnable {
		publisher = queue.NewPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	paymentSvc := service.NewPaymentService(paymentRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	eventSvc := service.NewEventService(eventRepo, bookingRepo, paymentRepo)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, customerRepo, paymentSvc, publisher)
	reportSvc := service.NewReportingService(bookingRepo, eventRepo, customerRepo)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, router.Handlers{
		Customers: handler.NewCustomerHandler(customerSvc),
		Events:    handler.NewEventHandler(eventSvc),
		Bookings:  handler.NewBookingHandler(bookingSvc),
		Payments:  handler.NewPaymentHandler(paymentSvc),
		Reports:   handler.NewReportHandler(reportSvc),
	}, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
