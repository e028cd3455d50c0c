package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hospitalms/admin-console/internal/client"
	"github.com/hospitalms/admin-console/internal/config"
	"github.com/hospitalms/admin-console/internal/handler"
	"github.com/hospitalms/admin-console/internal/middleware"
	"github.com/hospitalms/admin-console/internal/model"
	"github.com/hospitalms/admin-console/internal/notifier"
	"github.com/hospitalms/admin-console/internal/resource"
	"github.com/hospitalms/admin-console/internal/router"
	"github.com/hospitalms/admin-console/pkg/logger"
	"github.com/hospitalms/admin-console/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logging.Pretty,
	})

	appMetrics := metrics.NewMetrics("console")

	// Notifications fan out to the log and the recent-messages buffer.
	recorder := notifier.NewRecorder(cfg.Console.NotificationHistory)
	sink := notifier.Fanout{notifier.NewLogSink(appLogger), recorder}

	// Shared backend transport for the REST-backed screens.
	backend := client.NewBackend(client.BackendConfig{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		CacheTTL: cfg.Backend.CacheTTL,
		RPS:      cfg.Backend.RPS,
		Burst:    cfg.Backend.Burst,
	}, appLogger, appMetrics)

	ctrlCfg := resource.ControllerConfig{
		PageSize: cfg.Console.PageSize,
		Notifier: sink,
		Logger:   appLogger,
		Metrics:  appMetrics,
	}

	// REST-backed screens.
	outpatientCtrl := resource.NewController(model.OutpatientSchema(),
		client.NewREST[model.Outpatient](backend, "outpatients", client.OutpatientPaths), ctrlCfg)
	pharmacistCtrl := resource.NewController(model.PharmacistSchema(),
		client.NewREST[model.Pharmacist](backend, "pharmacists", client.PharmacistPaths), ctrlCfg)
	doctorCtrl := resource.NewController(model.DoctorSchema(),
		client.NewREST[model.Doctor](backend, "doctors", client.DoctorPaths), ctrlCfg)
	appointmentCtrl := resource.NewController(model.AppointmentSchema(),
		client.NewREST[model.Appointment](backend, "appointments", client.AppointmentPaths), ctrlCfg)

	// Sample-data screens, served in process.
	userCtrl := resource.NewController(model.UserSchema(),
		client.NewMemory("user", model.SeedUsers(),
			func(u *model.User, id string) { u.ID = id }), ctrlCfg)
	transactionCtrl := resource.NewController(model.TransactionSchema(),
		client.NewMemory("transaction", model.SeedTransactions(),
			func(t *model.Transaction, id string) { t.ID = id }), ctrlCfg)

	metricsPath := ""
	if cfg.Monitoring.PrometheusEnabled {
		metricsPath = cfg.Monitoring.MetricsPath
	}

	r := router.NewRouter(handler.NewHandler(), router.RouterConfig{
		RateLimit:   rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:   cfg.RateLimit.Burst,
		CORSConfig:  middleware.DefaultCORSConfig(),
		MetricsPath: metricsPath,
	},
		handler.NewResource(outpatientCtrl),
		handler.NewResource(pharmacistCtrl),
		handler.NewResource(doctorCtrl),
		handler.NewResource(appointmentCtrl),
		handler.NewResource(userCtrl),
		handler.NewResource(transactionCtrl),
		handler.NewNotification(recorder),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("console listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
