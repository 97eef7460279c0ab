package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicbridge/backend/internal/api/handlers"
	"github.com/clinicbridge/backend/internal/api/routes"
	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/application/tools"
	"github.com/clinicbridge/backend/internal/infrastructure/clients/openai"
	"github.com/clinicbridge/backend/internal/infrastructure/clients/tablestore"
	"github.com/clinicbridge/backend/internal/infrastructure/observability"
	"github.com/clinicbridge/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize remote table store client
	store, err := tablestore.NewClient(&cfg.RemoteStore)
	if err != nil {
		log.Fatalf("Failed to initialize table store client: %v", err)
	}
	log.Println("Table store client initialized successfully")

	// Initialize structured inference client
	inference, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}
	log.Println("OpenAI client initialized successfully")

	// Initialize services

	reconciler := services.NewReconciler(store)

	patientService := services.NewPatientService(store)
	diagnosisService := services.NewDiagnosisService(store)
	preferenceService := services.NewPreferenceService(store)
	prescriptionService := services.NewPrescriptionService(store, reconciler)
	requisitionService := services.NewRequisitionService(store, reconciler)
	facilityService := services.NewFacilityService(store, patientService)

	registry := tools.NewRegistry()
	workflowService := services.NewWorkflowService(
		store,
		inference,
		diagnosisService,
		prescriptionService,
		requisitionService,
		registry,
	)
	if err := workflowService.RegisterTools(); err != nil {
		log.Fatalf("Failed to register workflow tools: %v", err)
	}

	// Initialize handlers

	patientHandler := handlers.NewPatientHandler(patientService)
	diagnosisHandler := handlers.NewDiagnosisHandler(diagnosisService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	requisitionHandler := handlers.NewRequisitionHandler(requisitionService)
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	workflowHandler := handlers.NewWorkflowHandler(workflowService)

	// Set up router

	router := routes.NewRouter(
		patientHandler,
		diagnosisHandler,
		preferenceHandler,
		prescriptionHandler,
		requisitionHandler,
		facilityHandler,
		workflowHandler,
		*logger,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout must outlast a workflow call,
	// which chains remote table reads around a 60s inference timeout.
	serverAddr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
