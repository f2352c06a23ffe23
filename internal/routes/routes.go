package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	"github.com/BruksfildServices01/master-scheduler/internal/config"
	accountdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/account"
	bookingdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	catalogdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/catalog"
	scheduledomain "github.com/BruksfildServices01/master-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/master-scheduler/internal/handlers"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/master-scheduler/internal/usecase/account"
	ucBooking "github.com/BruksfildServices01/master-scheduler/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/master-scheduler/internal/usecase/catalog"
	ucSchedule "github.com/BruksfildServices01/master-scheduler/internal/usecase/schedule"
)

// Dependencies are the long-lived collaborators built by main.
type Dependencies struct {
	Bookings bookingdomain.Repository
	Schedule scheduledomain.Repository
	Catalog  catalogdomain.Repository
	Accounts accountdomain.Repository

	// Cache is nil when Redis is not configured.
	Cache ucBooking.AvailabilityCache

	Audit     *audit.Dispatcher
	AuditLogs *audit.Logger
}

func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	var invalidator ucSchedule.Invalidator
	if deps.Cache != nil {
		invalidator = deps.Cache
	}

	tokens := ucAccount.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL())
	accountsUC := ucAccount.NewAccounts(deps.Accounts, tokens, deps.Audit)

	catalogUC := ucCatalog.NewCatalog(deps.Catalog, deps.Audit)

	listMastersUC := ucBooking.NewListMasters(deps.Bookings)
	getMasterUC := ucBooking.NewGetMaster(deps.Bookings)
	availabilityUC := ucBooking.NewGetAvailability(deps.Bookings, deps.Cache)
	createBookingUC := ucBooking.NewCreateBooking(deps.Bookings, deps.Cache, deps.Audit)
	cancelBookingUC := ucBooking.NewCancelBooking(deps.Bookings, deps.Cache, deps.Audit)
	getBookingUC := ucBooking.NewGetBooking(deps.Bookings)
	listBookingsUC := ucBooking.NewListBookings(deps.Bookings)

	generateSlotsUC := ucSchedule.NewGenerateSlots(deps.Schedule, invalidator, deps.Audit)
	listSlotsUC := ucSchedule.NewListSlots(deps.Schedule)
	manageSlotUC := ucSchedule.NewManageSlot(deps.Schedule, invalidator, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountsUC)
	meHandler := handlers.NewMeHandler(accountsUC)
	serviceHandler := handlers.NewServiceHandler(catalogUC)

	slotHandler := handlers.NewSlotHandler(
		accountsUC,
		generateSlotsUC,
		listSlotsUC,
		manageSlotUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		listBookingsUC,
		getBookingUC,
		cancelBookingUC,
	)

	publicHandler := handlers.NewPublicHandler(
		listMastersUC,
		getMasterUC,
		catalogUC,
		availabilityUC,
		createBookingUC,
		getBookingUC,
		cancelBookingUC,
		cfg.AvailabilityWindow(),
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/masters", publicHandler.ListMasters)
			publicAPI.GET("/masters/:slug", publicHandler.GetMaster)
			publicAPI.GET("/masters/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/masters/:slug/slots", publicHandler.Availability)
			publicAPI.POST("/masters/:slug/bookings", publicHandler.CreateBooking)

			publicAPI.GET("/bookings/:reference", publicHandler.GetBooking)
			publicAPI.POST("/bookings/:reference/cancel", publicHandler.CancelBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// MASTER CABINET
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateProfile)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/slots", slotHandler.List)
			secured.POST("/me/slots/generate", slotHandler.Generate)
			secured.DELETE("/me/slots/:id", slotHandler.Delete)
			secured.PATCH("/me/slots/:id/block", slotHandler.Block)
			secured.PATCH("/me/slots/:id/unblock", slotHandler.Unblock)

			secured.GET("/me/bookings", bookingHandler.List)
			secured.GET("/me/bookings/:id", bookingHandler.Get)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			if deps.AuditLogs != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogs)
				secured.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
