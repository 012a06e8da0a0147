package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	enrollmentservice "coursebay/contexts/commerce/enrollment-service"
	mailadapter "coursebay/contexts/commerce/enrollment-service/adapters/mail"
	enrollmentpostgres "coursebay/contexts/commerce/enrollment-service/adapters/postgres"
	stripeadapter "coursebay/contexts/commerce/enrollment-service/adapters/stripe"
	enrollmentworkers "coursebay/contexts/commerce/enrollment-service/application/workers"
	catalogservice "coursebay/contexts/course-catalog/catalog-service"
	catalogpostgres "coursebay/contexts/course-catalog/catalog-service/adapters/postgres"
	identityservice "coursebay/contexts/identity-access/identity-service"
	cryptoadapter "coursebay/contexts/identity-access/identity-service/adapters/crypto"
	identitypostgres "coursebay/contexts/identity-access/identity-service/adapters/postgres"
	sessionservice "coursebay/contexts/identity-access/session-service"
	jwtadapter "coursebay/contexts/identity-access/session-service/adapters/jwt"
	contractsv1 "coursebay/contracts/gen/events/v1"
	"coursebay/internal/platform/config"
	"coursebay/internal/platform/db"
	"coursebay/internal/platform/httpserver"
	"coursebay/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	bus      messaging.Bus
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	bus          messaging.Bus
	outboxRelay  enrollmentworkers.OutboxRelay
	welcomeMail  enrollmentworkers.WelcomeMailer
	pollInterval time.Duration
	logger       *slog.Logger
}

// newBus picks the transport by configuration: a Kafka cluster when brokers
// are listed, the in-process bus otherwise.
func newBus(brokers []string, logger *slog.Logger) (messaging.Bus, error) {
	if len(brokers) == 0 {
		return messaging.NewLocalBus(logger), nil
	}
	return messaging.NewKafka(brokers, logger)
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if strings.TrimSpace(cfg.StripeAPIKey) == "" {
		return nil, errors.New("STRIPE_API_KEY is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	codec, err := jwtadapter.New([]byte(cfg.SessionSecret), cfg.SessionIssuer)
	if err != nil {
		return nil, err
	}
	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Codec:  codec,
		TTL:    cfg.SessionTTL,
		Logger: logger,
	})
	sessions := sessionGlue{tokens: sessionModule.Tokens}

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Users:       identityRepo,
		Sessions:    sessions,
		Issuer:      sessions,
		Passwords:   cryptoadapter.BcryptHasher{},
		Clock:       identitypostgres.SystemClock{},
		IDGenerator: identitypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalogModule := catalogservice.NewModule(catalogservice.Dependencies{
		Courses:     catalogRepo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	bus, err := newBus(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	enrollmentRepo := enrollmentpostgres.NewRepository(pg.DB, logger)
	provider := stripeadapter.NewProvider(cfg.StripeAPIKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	enrollmentModule := enrollmentservice.NewModule(enrollmentservice.Dependencies{
		Provider:    provider,
		Enrollments: enrollmentRepo,
		Outbox:      enrollmentRepo,
		Courses:     courseDirectory{courses: catalogRepo},
		Publisher:   bus,
		Subscriber:  bus,
		Dedup:       enrollmentRepo,
		Mailer:      mailadapter.LogMailer{Logger: logger},
		Clock:       enrollmentpostgres.SystemClock{},
		IDGenerator: enrollmentpostgres.UUIDGenerator{},
		Currency:    cfg.CheckoutCurrency,
		Logger:      logger,
	})

	server := httpserver.New(identityModule, catalogModule, enrollmentModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		bus:      bus,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := newBus(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := enrollmentpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		outboxRelay: enrollmentworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     enrollmentpostgres.SystemClock{},
			Topic:     contractsv1.EventTypeEnrollmentActivated,
			BatchSize: 100,
			Logger:    logger,
		},
		welcomeMail: enrollmentworkers.WelcomeMailer{
			Subscriber: bus,
			Mailer:     mailadapter.LogMailer{Logger: logger},
			Dedup:      repo,
			Clock:      enrollmentpostgres.SystemClock{},
			DedupTTL:   7 * 24 * time.Hour,
			Logger:     logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var err error
	if a.bus != nil {
		err = a.bus.Close()
	}
	if a.postgres != nil {
		if closeErr := a.postgres.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.welcomeMail.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var err error
	if w.bus != nil {
		err = w.bus.Close()
	}
	if w.postgres != nil {
		if closeErr := w.postgres.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
