// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinebook/internal/bookings"
	"cinebook/internal/catalog"
	"cinebook/internal/notifications"
	"cinebook/internal/seats"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shared/middleware"
	"cinebook/internal/webhooks"
	"cinebook/pkg/kvstore"
	"cinebook/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	kv       kvstore.Store
	producer notifications.EventProducer
	log      *logger.Logger

	catalogService catalog.Service
	seatService    seats.Service
	bookingService bookings.Service
	dispatcher     webhooks.Dispatcher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, kv kvstore.Store, producer notifications.EventProducer, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		kv:       kv,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.ClientIdentity())
	{
		// Catalog must come first: seats and bookings depend on its service
		r.setupCatalogRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// BookingService exposes the booking service for the reminder scheduler.
// Valid after SetupRoutes.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// Dispatcher exposes the webhook dispatcher for the reminder scheduler.
// Valid after SetupRoutes.
func (r *Router) Dispatcher() webhooks.Dispatcher {
	return r.dispatcher
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupCatalogRoutes configures movie and session browsing routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	client := catalog.NewClient(r.config.Collaborators.MoviesBaseURL, r.config.Collaborators.RequestTimeout)
	r.catalogService = catalog.NewService(client, r.log)
	controller := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, controller)
}

// setupSeatRoutes configures seat inventory and selection routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	client := seats.NewClient(r.config.Collaborators.BookingsBaseURL, r.config.Collaborators.RequestTimeout)
	store := seats.NewSelectionStore(r.kv, r.config.Booking.SelectionTTL)
	r.seatService = seats.NewService(client, store, r.catalogService, r.kv, r.config, r.log)
	controller := seats.NewController(r.seatService, r.catalogService, r.config)

	seats.SetupSeatRoutes(rg, controller)
}

// setupBookingRoutes configures checkout and booking history routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	storeClient := bookings.NewStoreClient(r.config.Collaborators.BookingsBaseURL, r.config.Collaborators.RequestTimeout)
	repo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.dispatcher = webhooks.NewDispatcher(r.config.Webhooks, r.log)

	r.bookingService = bookings.NewService(
		r.seatService,
		r.catalogService,
		storeClient,
		repo,
		r.dispatcher,
		r.producer,
		r.kv,
		r.config,
		r.log,
	)
	controller := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, controller)
}
