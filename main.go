package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/allotdesk/cliparse"
	"github.com/danielhkuo/allotdesk/db"
	"github.com/danielhkuo/allotdesk/mailer"
	"github.com/danielhkuo/allotdesk/metrics"
	"github.com/danielhkuo/allotdesk/middleware"
	"github.com/danielhkuo/allotdesk/router"
	"github.com/danielhkuo/allotdesk/sheets"
	"github.com/danielhkuo/allotdesk/store"
	"github.com/danielhkuo/allotdesk/syncer"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("invalid database type", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	st := store.New(dbConn, dialect)

	// Credentials are resolved on the first spreadsheet call
	source := sheets.NewGoogleSource(sheets.Loader(sheets.CredentialsConfig{
		JSON:      os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		SecretID:  os.Getenv("GOOGLE_SERVICE_ACCOUNT_SECRET_ID"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}, nil))

	svc := syncer.New(source, st,
		syncer.WithWritebackRound(cfg.WritebackRound),
		syncer.WithMetrics(m),
	)

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:    st,
		Syncer:   svc,
		Mailer:   mailer.NewSMTPMailer(os.Getenv),
		Event:    mailer.EventFromEnv(os.Getenv),
		Metrics:  m,
		Gatherer: reg,
	})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "writeback_round", cfg.WritebackRound)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
