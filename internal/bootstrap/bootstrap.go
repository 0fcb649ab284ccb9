package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"trading-analyzer-go/internal/core/providers/vision"
	domainimage "trading-analyzer-go/internal/domain/image"
	platformconfig "trading-analyzer-go/internal/platform/config"
	platformerrors "trading-analyzer-go/internal/platform/errors"
	platformlogging "trading-analyzer-go/internal/platform/logging"
	httptransport "trading-analyzer-go/internal/transport/http"
	httpchart "trading-analyzer-go/internal/transport/http/chart"
)

const shutdownTimeout = 5 * time.Second

// Run loads configuration, wires the services and drives the HTTP server
// lifecycle until a shutdown signal arrives.
func Run(ctx context.Context) error {
	cfg, err := platformconfig.NewLoader().Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "bootstrap.run",
			"failed to load configuration", err)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "bootstrap.run",
			"failed to initialise logger", err)
	}
	defer logger.Close()

	if cfg.Vision.APIKey == "" {
		logger.WarnTag("Bootstrap", "OPENAI_API_KEY not set; analysis requests will fail upstream")
	}

	server, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)

	group.Go(func() error {
		logger.InfoTag("Bootstrap", "listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return platformerrors.Wrap(platformerrors.KindTransport, "bootstrap.run",
				"http server exited", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.InfoTag("Bootstrap", "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return platformerrors.Wrap(platformerrors.KindTransport, "bootstrap.run",
				"http server shutdown failed", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	logger.InfoTag("Bootstrap", "server stopped")
	return nil
}

// buildServer wires the image pipeline, vision provider and HTTP transport
// into a ready-to-run server.
func buildServer(
	ctx context.Context,
	cfg *platformconfig.Config,
	logger *platformlogging.Logger,
) (*http.Server, error) {
	provider, err := vision.NewProvider(cfg.Vision, logger)
	if err != nil {
		return nil, err
	}

	validator := domainimage.NewValidator(cfg.Upload, logger)
	normalizer := domainimage.NewNormalizer(cfg.Upload, logger)

	router, err := httptransport.Build(httptransport.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "bootstrap.build",
			"failed to build http router", err)
	}

	service, err := httpchart.NewService(cfg, logger, validator, normalizer, provider)
	if err != nil {
		return nil, err
	}
	if err := service.Register(ctx, router.Engine, router.API); err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port),
		Handler: router.Engine,
	}, nil
}
