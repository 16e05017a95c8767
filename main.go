package main

import (
	"context"
	"log"
	"net"
	"os"
	"strings"

	"normfit/adapters/excel"
	"normfit/adapters/rng"
	"normfit/app"
	"normfit/domain/fit"
	"normfit/internal"
	"normfit/internal/config"
	"normfit/internal/ops"
	"normfit/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(appConfig.Log.Level), appConfig.Log.Format == "json")
	gin.SetMode(appConfig.Server.GinMode)

	service, err := app.NewFitService(rng.NewRNGAdapter(), logger, app.FitOptions{
		MaxSampleSize:   appConfig.Fit.MaxSampleSize,
		Alpha:           appConfig.Fit.Alpha,
		ExpectationMode: fit.ExpectationMode(strings.ToLower(appConfig.Fit.ExpectationMode)),
	})
	if err != nil {
		log.Fatalf("Failed to create fit service: %v", err)
	}

	if appConfig.Profiling.Enabled {
		opsServer := ops.Start(net.JoinHostPort("", appConfig.Profiling.Port), logger)
		defer opsServer.Shutdown(context.Background())
	}

	server := ui.NewServer(service, excel.NewReportWriter(), appConfig.Fit, logger)
	if err := server.Start(net.JoinHostPort("", appConfig.Server.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
