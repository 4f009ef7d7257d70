package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/oceaniadigital/lead-relay/internal/api/router"
	appconfig "github.com/oceaniadigital/lead-relay/internal/config"
	"github.com/oceaniadigital/lead-relay/internal/events"
	"github.com/oceaniadigital/lead-relay/internal/leads"
	"github.com/oceaniadigital/lead-relay/internal/notify"
	"github.com/oceaniadigital/lead-relay/internal/observability/metrics"
	"github.com/oceaniadigital/lead-relay/internal/zoho"
	"github.com/oceaniadigital/lead-relay/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"tls", cfg.TLSEnabled(),
	)

	// Observability sink: per-day file plus optional chat webhook mirror
	fileSink, err := events.NewFileSink(cfg.EventLogDir, logger)
	if err != nil {
		logger.Error("failed to open event log dir", "error", err, "dir", cfg.EventLogDir)
		os.Exit(1)
	}
	defer fileSink.Close()

	sinks := events.MultiSink{fileSink}
	if webhook := events.NewWebhookSink(cfg.ChatWebhookURL, logger); webhook != nil {
		sinks = append(sinks, webhook)
	}

	// Metrics
	submissionMetrics := metrics.NewSubmissionMetrics(nil)

	// Outbound forwarder
	forwarder := zoho.NewClient(zoho.Config{
		Endpoint:     cfg.ZohoEndpoint,
		Timeout:      cfg.ZohoTimeout,
		StrictStatus: cfg.ZohoStrictStatus,
	}, logger)

	// Best-effort email alerts
	var notifier leads.Notifier
	emailSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	if emailSender != nil {
		if alerts := notify.NewLeadAlerts(emailSender, notify.AlertsConfig{
			Recipients:    cfg.AlertRecipients,
			NotifyOnLead:  cfg.NotifyOnLead,
			NotifyOnError: cfg.NotifyOnError,
		}, logger); alerts != nil {
			notifier = alerts
		}
	}

	// Submission handler
	leadsHandler := leads.NewHandler(leads.HandlerConfig{
		Forwarder: forwarder,
		Sink:      sinks,
		Statics: leads.StaticFields{
			OrgToken:     cfg.ZohoOrgToken,
			SessionToken: cfg.ZohoSessionToken,
			ActionType:   cfg.ZohoActionType,
			ReturnURL:    cfg.ZohoReturnURL,
		},
		AmountField: cfg.AmountField,
		Endpoint:    cfg.ZohoEndpoint,
		Metrics:     submissionMetrics,
		Notifier:    notifier,
		Logger:      logger,
	})

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		Sink:               sinks,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.TLSEnabled() {
		srv.ConnState = func(conn net.Conn, state http.ConnState) {
			if state == http.StateNew {
				sinks.Append(events.New(events.TypeTLSConnection, events.TLSConnectionPayload{
					RemoteAddr: conn.RemoteAddr().String(),
				}))
			}
		}
	}

	// Start server in a goroutine
	go func() {
		sinks.Append(events.New(events.TypeServerStart, events.ServerStartPayload{
			Addr: srv.Addr,
			TLS:  cfg.TLSEnabled(),
		}))
		logger.Info("server listening", "addr", srv.Addr, "tls", cfg.TLSEnabled())

		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			if err != nil && err != http.ErrServerClosed {
				sinks.Append(events.New(events.TypeTLSError, events.TLSErrorPayload{Message: err.Error()}))
			}
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
