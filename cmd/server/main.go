package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/handler"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/server"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/internal/workers"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("privacy-server")
	log.Info().
		Object("build", models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)).
		Msg("starting privacy server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}
	cfg.App.BuildDate = buildDate
	cfg.App.BuildCommit = buildCommit

	ctx := log.WithContext(context.Background())

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	key, err := crypto.NewFileKeyStore(cfg.Storage.KeyFile).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading field-encryption key")
	}

	cipher, err := crypto.NewFieldCipher(key)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating field cipher")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	services, err := service.NewServices(
		store.NewStorages(db, log),
		cipher,
		crypto.NewPasswordHasher(cfg.App.PasswordHashKey),
		m,
		*cfg,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.App.SeedUsers {
		if err = services.AuthService.SeedDefaultUsers(ctx); err != nil {
			log.Fatal().Err(err).Msg("error seeding default users")
		}
	}

	handlers, err := handler.NewHandlers(services, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewBackgroundWorkers(services, cfg.Workers, log)

	srv, err := server.NewServer(handlers, prometheus.DefaultGatherer, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}
