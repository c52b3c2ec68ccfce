package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

// Deps are the long-lived singletons main owns and closes.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Settings *infraRepo.SettingsStore
	AuditLog *audit.Logger
	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics // nil when disabled
	Gateway  ucPayment.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg := d.DB, d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db, d.Settings)
	paymentRepo := infraRepo.NewPaymentGormRepository(db, d.Settings)

	// ======================================================
	// 🧠 USE CASES - APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Audit,
		d.Metrics,
		cfg.MaxRecurrenceMonths,
	)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	listOccurrencesUC := ucAppointment.NewListOccurrences(appointmentRepo)
	changeStatusUC := ucAppointment.NewChangeStatus(appointmentRepo, d.Audit, d.Metrics)
	setPaymentStatusUC := ucAppointment.NewSetPaymentStatus(appointmentRepo, d.Audit)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	submitRequestUC := ucAppointment.NewSubmitRequest(appointmentRepo, d.Audit)
	listRequestsUC := ucAppointment.NewListRequests(appointmentRepo)
	reviewRequestUC := ucAppointment.NewReviewRequest(appointmentRepo, createAppointmentUC, d.Audit)

	// ======================================================
	// 🧠 USE CASES - PAYMENTS
	// ======================================================
	chargeAppointmentUC := ucPayment.NewChargeAppointment(paymentRepo, d.Audit, d.Metrics)
	subscriptionsUC := ucPayment.NewSubscriptions(paymentRepo, d.Audit, d.Metrics)
	settleUC := ucPayment.NewSettle(paymentRepo, d.Audit, d.Metrics)
	listPaymentsUC := ucPayment.NewListPayments(paymentRepo)
	gatewayUC := ucPayment.NewGatewaySync(paymentRepo, d.Gateway, settleUC, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(db, d.Audit)
	settingsHandler := handlers.NewSettingsHandler(d.Settings, d.Audit)
	userHandler := handlers.NewUserHandler(db, d.Audit)

	serviceHandler := handlers.NewServiceHandler(db, d.Audit)
	clientHandler := handlers.NewClientHandler(db, d.Audit)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, d.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		listOccurrencesUC,
		changeStatusUC,
		setPaymentStatusUC,
		chargeAppointmentUC,
	)

	bookingHandler := handlers.NewBookingHandler(db, availabilityUC, submitRequestUC)
	requestReviewHandler := handlers.NewRequestReviewHandler(listRequestsUC, reviewRequestUC)

	paymentHandler := handlers.NewPaymentHandler(db, listPaymentsUC, settleUC, gatewayUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionsUC)
	financeHandler := handlers.NewFinanceHandler(listPaymentsUC, d.Settings)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Settings)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// 👤 QUALQUER PERFIL
		// ------------------------------
		api.GET("/me", meHandler.GetMe)
		api.GET("/payments/:id/qrcode", paymentHandler.QRCode)

		// ------------------------------
		// 🙋 CLIENTE
		// ------------------------------
		client := api.Group("/client")
		client.Use(middleware.RequireLevel(access.LevelClient))
		{
			client.GET("/services", bookingHandler.ListServices)
			client.GET("/staff", bookingHandler.ListStaff)
			client.GET("/availability", bookingHandler.Availability)
			client.POST("/requests", bookingHandler.Submit)
			client.POST("/requests/back", bookingHandler.Back)
			client.GET("/requests", bookingHandler.MyRequests)
		}

		// ------------------------------
		// ✂️ EQUIPE
		// ------------------------------
		staff := api.Group("/staff")
		staff.Use(middleware.RequireLevel(access.LevelStaff))
		{
			staff.PATCH("/me/pix-key", meHandler.UpdatePixKey)

			staff.GET("/services", serviceHandler.List)
			staff.GET("/clients", clientHandler.List)
			staff.POST("/clients", clientHandler.Create)

			staff.GET("/working-hours", workingHoursHandler.Get)
			staff.PUT("/working-hours", workingHoursHandler.Update)

			// APPOINTMENTS
			staff.POST("/appointments", appointmentHandler.Create)
			staff.GET("/appointments", appointmentHandler.ListByDate)
			staff.GET("/appointments/month", appointmentHandler.ListByMonth)
			staff.GET("/appointments/:id/occurrences", appointmentHandler.Occurrences)
			staff.PATCH("/appointments/:id/confirm", appointmentHandler.Transition(domain.ActionConfirm))
			staff.PATCH("/appointments/:id/complete", appointmentHandler.Transition(domain.ActionComplete))
			staff.PATCH("/appointments/:id/cancel", appointmentHandler.Transition(domain.ActionCancel))
			staff.PATCH("/appointments/:id/no-show", appointmentHandler.Transition(domain.ActionNoShow))
			staff.PATCH("/appointments/:id/revert", appointmentHandler.Transition(domain.ActionRevert))
			staff.PATCH("/appointments/:id/payment", appointmentHandler.SetPaymentStatus)
			staff.POST("/appointments/:id/charge", appointmentHandler.Charge)

			// REQUESTS
			staff.GET("/requests", requestReviewHandler.List)
			staff.PATCH("/requests/:id/approve", requestReviewHandler.Approve)
			staff.PATCH("/requests/:id/reject", requestReviewHandler.Reject)
		}

		// ------------------------------
		// 🛡️ ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireLevel(access.LevelAdmin))
		{
			admin.GET("/settings", settingsHandler.Get)
			admin.PUT("/settings", settingsHandler.Update)

			admin.GET("/users", userHandler.List)
			admin.PATCH("/users/:id/level", userHandler.SetLevel)

			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.POST("/subscriptions", subscriptionHandler.Create)
			admin.GET("/subscriptions", subscriptionHandler.List)
			admin.PATCH("/subscriptions/:id/cancel", subscriptionHandler.Cancel)
			admin.POST("/subscriptions/:id/charge", subscriptionHandler.Charge)

			admin.GET("/payments", paymentHandler.List)
			admin.GET("/payments/:id", paymentHandler.Get)
			admin.PATCH("/payments/:id/paid", paymentHandler.MarkPaid)
			admin.POST("/payments/overdue", paymentHandler.SweepOverdue)
			admin.POST("/payments/:id/gateway", paymentHandler.RegisterGateway)
			admin.POST("/payments/:id/gateway/sync", paymentHandler.SyncGateway)

			admin.GET("/finance/summary", financeHandler.Summary)
			admin.GET("/finance/export", financeHandler.Export)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
