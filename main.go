package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/locvowork/hrms_gateway/internal/bootstrap"
	"github.com/locvowork/hrms_gateway/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		log.Fatal(err)
	}

	go func() {
		if err := app.Run(); err != nil {
			logger.ErrorLog(ctx, "Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLog(shutdownCtx, "Graceful shutdown failed: %v", err)
	}
	logger.InfoLog(shutdownCtx, "Gateway stopped")
}
