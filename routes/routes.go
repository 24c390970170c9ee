package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"randevu/handlers"
	"randevu/middleware"
)

// RegisterAuthRoutes registers the patient account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (require authentication)
		api.Use(middleware.PatientAuthMiddleware(hb.AuthGateway))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
		api.PUT("/profile", hb.UpdateProfileHandler)
		api.PUT("/password", hb.UpdatePasswordHandler)
	}
}

// RegisterReferenceRoutes registers the placement hierarchy endpoints.
func RegisterReferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reference")
	{
		api.GET("", hb.ReferenceHandler)
		api.GET("/options", hb.FilterOptionsHandler)
	}
}

// RegisterWorkflowRoutes sets up the booking workflow session endpoints.
func RegisterWorkflowRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workflow")
	{
		api.Use(middleware.PatientAuthMiddleware(hb.AuthGateway))
		api.POST("/session", hb.StartSessionHandler)
		api.GET("/session/:sessionID", hb.GetSessionHandler)
		api.POST("/session/:sessionID/search", hb.SearchHandler)
		api.POST("/session/:sessionID/provider-day", hb.SelectProviderDayHandler)
		api.POST("/session/:sessionID/slot", hb.SelectSlotHandler)
		api.POST("/session/:sessionID/confirm", hb.ConfirmHandler)
		api.POST("/session/:sessionID/cancel-confirm", hb.CancelConfirmHandler)
		api.POST("/session/:sessionID/back", hb.BackHandler)
		api.DELETE("/session/:sessionID", hb.CloseSessionHandler)
	}
}

// RegisterAppointmentRoutes sets up the booking history endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.PatientAuthMiddleware(hb.AuthGateway))
		api.GET("/history", hb.HistoryHandler)
		api.GET("/past", hb.PastAppointmentsHandler)
		api.POST("/cancel", hb.CancelAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterReferenceRoutes(r, hb)
	RegisterWorkflowRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
