package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"randevu/config"
	"randevu/database"
	"randevu/database/repository"
	"randevu/handlers"
	"randevu/middleware"
	"randevu/routes"
	"randevu/services/auth"
	"randevu/services/availability"
	"randevu/services/reference"
	"randevu/services/workflow"
	"randevu/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitAuthCache()

	availabilityClient := availability.NewHTTPClient(config.AppConfig.AvailabilityAPIURL)

	// The placement hierarchy is loaded once at startup; the service cannot
	// resolve any filter without it.
	refCtx, refCancel := context.WithTimeout(context.Background(), 15*time.Second)
	refCache, err := reference.Load(refCtx, availabilityClient, logger)
	refCancel()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load reference data: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	appointmentRepo := repository.NewMongoAppointmentRepo()
	patientRepo := repository.NewMongoPatientRepo()

	// services.
	resolver := workflow.NewFilterResolver(refCache)
	recorder := workflow.NewRecorder(appointmentRepo, logger)

	sessionService := &workflow.DefaultSessionService{
		Availability: availabilityClient,
		Resolver:     resolver,
		Recorder:     recorder,
		Cache:        utils.GetSessionCacheClient(),
		TTL:          time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		Grid: workflow.GridConfig{
			OpenHour:    config.AppConfig.ClinicOpenHour,
			CloseHour:   config.AppConfig.ClinicCloseHour,
			StepMinutes: config.AppConfig.SlotStepMinutes,
		},
		WindowDays: config.AppConfig.SlotWindowDays,
		Logger:     logger,
	}

	authGateway := &auth.DefaultGateway{
		Repo:  patientRepo,
		Cache: utils.GetAuthCacheClient(),
	}

	authHandler := handlers.NewAuthHandler(authGateway, logger)
	referenceHandler := handlers.NewReferenceHandler(refCache, resolver, availabilityClient, logger)
	workflowHandler := handlers.NewWorkflowHandler(sessionService, logger)
	appointmentsHandler := handlers.NewAppointmentsHandler(recorder, availabilityClient, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthGateway: authGateway,

		// Account endpoints.
		RegisterHandler:       authHandler.Register,
		LoginHandler:          authHandler.Login,
		LogoutHandler:         authHandler.Logout,
		MeHandler:             authHandler.Me,
		UpdateProfileHandler:  authHandler.UpdateProfile,
		UpdatePasswordHandler: authHandler.UpdatePassword,

		// Reference endpoints.
		ReferenceHandler:     referenceHandler.Get,
		FilterOptionsHandler: referenceHandler.Options,

		// Workflow endpoints.
		StartSessionHandler:      workflowHandler.Start,
		GetSessionHandler:        workflowHandler.Get,
		SearchHandler:            workflowHandler.Search,
		SelectProviderDayHandler: workflowHandler.SelectProviderDay,
		SelectSlotHandler:        workflowHandler.SelectSlot,
		ConfirmHandler:           workflowHandler.Confirm,
		CancelConfirmHandler:     workflowHandler.CancelConfirm,
		BackHandler:              workflowHandler.Back,
		CloseSessionHandler:      workflowHandler.Close,

		// Appointment endpoints.
		HistoryHandler:           appointmentsHandler.History,
		CancelAppointmentHandler: appointmentsHandler.Cancel,
		PastAppointmentsHandler:  appointmentsHandler.Past,

		// Operational endpoints.
		HealthHandler: handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
