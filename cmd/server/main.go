package main

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpdelivery "github.com/sepatools/epc-qr-hub/internal/delivery/http"
	"github.com/sepatools/epc-qr-hub/internal/i18n"
	"github.com/sepatools/epc-qr-hub/internal/infrastructure/config"
	"github.com/sepatools/epc-qr-hub/internal/infrastructure/memstore"
	"github.com/sepatools/epc-qr-hub/internal/infrastructure/qrgenerator"
	"github.com/sepatools/epc-qr-hub/internal/usecase/generate"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		cancel()
		return
	}

	bundle := i18n.Load(cfg.LocalesDir, logger)

	var logo image.Image
	if cfg.LogoPath != "" {
		logo, err = qrgenerator.LoadLogo(cfg.LogoPath)
		if err != nil {
			logger.Warn("logo not loaded, codes rendered without it", "path", cfg.LogoPath, "error", err)
		}
	}

	qrGen := qrgenerator.NewGenerator(cfg.QRSize, logo)
	store := memstore.NewStore(cfg.CodeTTL, cfg.MaxCodes)
	generateUC := generate.NewUseCase(qrGen, store)

	handler := httpdelivery.NewHandler(generateUC, bundle, logger)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
