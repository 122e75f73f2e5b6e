package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/config"
	"github.com/simitmodi/Stride-sub000/internal/handlers"
	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	sessionEvents := services.NewSessionEvents(rdb)

	authHandler := handlers.NewAuthHandler(db, cfg, sessionEvents)
	profileHandler := handlers.NewProfileHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, telegramService)
	scheduleHandler := handlers.NewScheduleHandler(db)
	feedbackHandler := handlers.NewFeedbackHandler(db, telegramService)
	branchHandler := handlers.NewBranchHandler(db)
	sessionHandler := handlers.NewSessionHandler(sessionEvents)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.Verify)

	// Public schedule information
	schedule := api.Group("/schedule")
	schedule.Get("/slots", scheduleHandler.ListSlots)
	schedule.Get("/availability", scheduleHandler.CheckAvailability)

	api.Get("/checklist/:category", scheduleHandler.GetChecklist)

	// Support form
	api.Post("/feedback", feedbackHandler.SubmitFeedback)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg, db))

	protected.Post("/auth/reauth", authHandler.Reauth)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password",
		middleware.RequireRecentReauth(cfg.ReauthWindow), authHandler.ChangePassword)
	protected.Delete("/auth/account",
		middleware.RequireRecentReauth(cfg.ReauthWindow), authHandler.DeleteAccount)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	protected.Post("/appointments", appointmentHandler.CreateAppointments)
	protected.Get("/appointments", appointmentHandler.ListAppointments)
	protected.Get("/appointments/:id", appointmentHandler.GetAppointment)
	protected.Put("/appointments/:id", appointmentHandler.RescheduleAppointment)
	protected.Delete("/appointments/:id", appointmentHandler.CancelAppointment)

	protected.Get("/session/watch", sessionHandler.Watch)

	branch := protected.Group("/branch", middleware.RequireRole(models.RoleBank, models.RoleDeveloper))
	branch.Get("/appointments", branchHandler.ListBranchAppointments)
}
