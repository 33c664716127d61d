package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/budget-keeper/internal/adapter"
	"github.com/MKhiriev/budget-keeper/internal/client"
	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/tui"
	"github.com/MKhiriev/budget-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("budget-keeper-client", os.Stderr)

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if len(args) > 0 && args[0] == "version" {
		printBuildInfo()
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ui := tui.New(nil, nil, log)
	app := client.NewApp(serverAdapter, ui, client.NewFileSessionStore(cfg.SessionFile), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx, args)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func printBuildInfo() {
	build := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))

	fmt.Printf("Client version: %s (%s, %s)\n", build.BuildVersion(), build.BuildDate(), build.BuildCommit())
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
