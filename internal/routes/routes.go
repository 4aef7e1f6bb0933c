package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/session"
	ucAppointment "github.com/BruksfildServices01/barber-queue/internal/usecase/appointment"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	notifier *notify.Dispatcher,
	cfg *config.Config,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	queueRepo := infraRepo.NewQueueGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	sessions := session.NewRegistry(rdb, cfg.SessionTTL)

	// ======================================================
	// 🧠 USE CASES — FILA
	// ======================================================
	enforceUC := ucQueue.NewEnforceUpNext(queueRepo)

	joinQueueUC := ucQueue.NewJoinQueue(
		queueRepo,
		enforceUC,
		notifier,
		auditDispatcher,
	)

	listBoardUC := ucQueue.NewListBoard(queueRepo)

	callNextUC := ucQueue.NewCallNext(
		queueRepo,
		enforceUC,
		notifier,
		auditDispatcher,
	)

	completeCutUC := ucQueue.NewCompleteCut(
		queueRepo,
		enforceUC,
		notifier,
		auditDispatcher,
	)

	cancelEntryUC := ucQueue.NewCancelEntry(
		queueRepo,
		enforceUC,
		notifier,
		auditDispatcher,
	)

	deleteEntryUC := ucQueue.NewDeleteEntry(
		queueRepo,
		enforceUC,
		notifier,
		auditDispatcher,
	)

	acknowledgeUC := ucQueue.NewAcknowledgeEntry(queueRepo)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	meHandler := handlers.NewMeHandler(db, sessions)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	queueHandler := handlers.NewQueueHandler(
		joinQueueUC,
		listBoardUC,
		callNextUC,
		completeCutUC,
		cancelEntryUC,
		deleteEntryUC,
		acknowledgeUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		bookAppointmentUC,
		joinQueueUC,
		listBoardUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (POR SLUG)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.GET("/:slug/queue", publicHandler.QueueBoard)
			publicAPI.POST("/:slug/appointments", publicHandler.BookAppointment)

			// Token de cliente é opcional: identifica a entrada e ativa a
			// regra de entrada única por usuário.
			publicAPI.POST("/:slug/queue", middleware.OptionalAuthMiddleware(cfg), publicHandler.JoinQueue)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/customer/register", authHandler.RegisterCustomer)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTE (DONO DA ENTRADA)
			// ------------------------------
			secured.DELETE("/queue/:id", queueHandler.Leave)
			secured.POST("/queue/:id/acknowledge", queueHandler.Acknowledge)

			// ------------------------------
			// EQUIPE DA BARBEARIA
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireStaff())
			{
				staff.PATCH("/me/availability", meHandler.UpdateAvailability)

				staff.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
				staff.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

				staff.GET("/me/clients", clientHandler.List)

				staff.GET("/me/services", serviceHandler.List)

				// ------------------------------
				// FILA (PAINEL DO BARBEIRO)
				// ------------------------------
				staff.GET("/me/queue", queueHandler.Board)
				staff.POST("/me/queue", queueHandler.AddWalkIn)
				staff.POST("/me/queue/:id/call", queueHandler.Call)
				staff.POST("/me/queue/:id/complete", queueHandler.Complete)
				staff.PATCH("/me/queue/:id/cancel", queueHandler.Cancel)

				// ------------------------------
				// APPOINTMENTS
				// ------------------------------
				staff.POST("/me/appointments", appointmentHandler.Create)
				staff.GET("/me/appointments", appointmentHandler.ListByDate)
				staff.GET("/me/appointments/month", appointmentHandler.ListByMonth)
				staff.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

				staff.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
