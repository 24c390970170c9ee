package handlers

import (
	"github.com/gin-gonic/gin"

	"randevu/services/auth"
)

// HandlerBundle aggregates every endpoint handler so route registration
// takes a single dependency.
type HandlerBundle struct {
	AuthGateway auth.Gateway

	// Account endpoints
	RegisterHandler       gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
	MeHandler             gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	UpdatePasswordHandler gin.HandlerFunc

	// Reference endpoints
	ReferenceHandler     gin.HandlerFunc
	FilterOptionsHandler gin.HandlerFunc

	// Workflow endpoints
	StartSessionHandler      gin.HandlerFunc
	GetSessionHandler        gin.HandlerFunc
	SearchHandler            gin.HandlerFunc
	SelectProviderDayHandler gin.HandlerFunc
	SelectSlotHandler        gin.HandlerFunc
	ConfirmHandler           gin.HandlerFunc
	CancelConfirmHandler     gin.HandlerFunc
	BackHandler              gin.HandlerFunc
	CloseSessionHandler      gin.HandlerFunc

	// Appointment endpoints
	HistoryHandler           gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc
	PastAppointmentsHandler  gin.HandlerFunc

	// Operational endpoints
	HealthHandler gin.HandlerFunc
}
