package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/audit"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/command"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/query"
	"github.com/example/storefront/internal/session"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		log.WithError(err).Fatal("storefront exited")
	}
}

// hashPassword prints the bcrypt hash to use as ADMIN_PASSWORD_HASH.
func hashPassword(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storefront hash-password <password>")
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	logger := log.StandardLogger()
	component := func(name string) *log.Entry { return logger.WithField("component", name) }
	apiLog := component("api")

	signer, err := auth.NewTokenSigner(cfg.SessionSecret)
	if err != nil {
		return err
	}
	if cfg.AdminPasswordHash != "" {
		if err := auth.ValidateHash(cfg.AdminPasswordHash); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
	}

	apiLog.WithFields(log.Fields{
		"addr":     cfg.HTTPAddr,
		"lang":     cfg.DefaultLang,
		"smtp":     cfg.SMTP.Enabled(),
		"kafka":    cfg.KafkaBrokers,
		"admin":    cfg.AdminPasswordHash != "",
		"auditLog": cfg.AuditLogPath,
	}).Info("starting storefront")

	// Initialize database
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}
	component("store").WithField("dialect", db.Dialect()).Info("database ready")

	// Initialize domain services
	catalogSvc := catalog.NewService(store.NewProductRepository(db))
	orderSvc := order.NewService(store.NewOrderRepository(db))

	if cfg.SeedCatalog {
		n, err := catalogSvc.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			component("store").WithField("products", n).Info("seeded empty catalog")
		}
	}

	var publisher command.Publisher
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	}

	notifier := email.NewService(cfg.SMTP, component("notifier"))

	// Initialize handlers
	cmdHandler := command.NewHandler(
		catalogSvc,
		orderSvc,
		audit.NewCSVLog(cfg.AuditLogPath),
		publisher,
		notifier,
		component("checkout"),
	)
	queryHandler := query.NewHandler(catalogSvc, orderSvc)

	handlers := api.NewHandlers(cmdHandler, queryHandler, apiLog)
	router := api.NewRouter(api.RouterConfig{
		Handlers:          handlers,
		AdminHandlers:     api.NewAdminHandlers(handlers, cfg.DefaultLang),
		Sessions:          session.NewStore(cfg.DefaultLang),
		Signer:            signer,
		CookieSecure:      cfg.CookieSecure,
		AdminPasswordHash: cfg.AdminPasswordHash,
		RequestTimeout:    30 * time.Second,
		Log:               apiLog,
	})

	// Start HTTP server
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		apiLog.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		apiLog.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	apiLog.Info("server exited")
	return nil
}
