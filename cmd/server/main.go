package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/handler"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/notifier"
	"github.com/MKhiriev/budget-keeper/internal/server"
	"github.com/MKhiriev/budget-keeper/internal/service"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/internal/workers"
	"github.com/MKhiriev/budget-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := printBuildInfo()

	log := logger.NewLogger("budget-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	// a linker-injected version wins over the "dev" default
	if cfg.App.Version == config.DefaultAppVersion && buildVersion != "" {
		cfg.App.Version = build.BuildVersion()
	}

	log.Debug().
		Str("blob_store", cfg.BlobStore.Backend).
		Str("address", cfg.Server.HTTPAddress).
		Str("notifier", cfg.Notifier.Kind).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.BlobStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	notificationSender, err := notifier.NewNotifier(cfg.Notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier")
	}
	notificationPool := workers.NewNotificationPool(notificationSender, cfg.Notifier.Workers, cfg.Notifier.QueueSize, log)

	services, err := service.NewServices(storages, notificationPool, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(notificationPool), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() models.AppBuildInfo {
	build := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))

	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())

	return build
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
