package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/router"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	st, rdb, err := infra.OpenStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Without Redis there is no job queue and approvals skip the document job.
	var dispatcher service.OrderDocumentDispatcher
	var jobs *worker.Dispatcher
	if rdb != nil {
		jobs = worker.NewDispatcher(rdb)
		dispatcher = jobs
	}

	svcs, err := router.NewServices(ctx, cfg, st, dispatcher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load state")
	}

	// Worker handlers are wired here (composition root) so the pool shares the
	// services the HTTP layer mutates.
	if rdb != nil {
		mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
		mailer := infra.NewMailer(cfg)
		if !mailer.Configured() {
			log.Warn().Msg("SMTP_HOST not set; vendor emails will fail and be dead-lettered")
		}
		pool := worker.NewPool(rdb, map[string]worker.Handler{
			worker.JobOrderDocument: worker.NewOrderDocumentWorker(svcs.Orders, svcs.Vendors, jobs, cfg.DocumentStoragePath),
			worker.JobEmail:         worker.NewEmailWorker(mailer, mailCB),
		})
		pool.Start(ctx, cfg.WorkerPoolSize)
		worker.StartRetryCron(ctx, worker.RetryCronConfig{RDB: rdb, MailCB: mailCB})
	}

	r := router.New(cfg, st, rdb, svcs)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("WIMS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}

// setupLogger configures the global zerolog logger: pretty console output in
// development, JSON in production.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
