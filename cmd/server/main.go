package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/quentinrf/crate-monitor/internal/adapters/expander"
	grpcAdapter "github.com/quentinrf/crate-monitor/internal/adapters/grpc"
	httpAdapter "github.com/quentinrf/crate-monitor/internal/adapters/http"
	"github.com/quentinrf/crate-monitor/internal/adapters/mock"
	"github.com/quentinrf/crate-monitor/internal/adapters/periph"
	"github.com/quentinrf/crate-monitor/internal/config"
	"github.com/quentinrf/crate-monitor/internal/metrics"
	"github.com/quentinrf/crate-monitor/internal/ports"
	"github.com/quentinrf/crate-monitor/internal/rack"
	"github.com/quentinrf/crate-monitor/pkg/cratepb"
	"github.com/quentinrf/crate-monitor/pkg/tlsconfig"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	log.Info().Str("hardware", cfg.Hardware).Msg("starting crate monitor")

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("crate monitor stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Detect hardware
	detector, err := newDetector(ctx, cfg)
	if err != nil {
		return err
	}
	controller, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("hardware detection failed: %w", err)
	}
	crate := rack.NewSerialized(controller)
	defer func() {
		if err := crate.Release(); err != nil {
			log.Error().Err(err).Msg("failed to release hardware")
		}
		log.Info().Msg("released hardware")
	}()

	log.Info().
		Str("backend", crate.Kind().String()).
		Bool("temperature", crate.HasTemperature()).
		Msg("rack ready")

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if cfg.TLSCert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(cfg.TLSCert, cfg.TLSKey, cfg.TLSCA)
		if err != nil {
			return fmt.Errorf("failed to load TLS config: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Bool("client_auth", cfg.TLSCA != "").Msg("TLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, gRPC runs without TLS")
	}

	// Create gRPC server
	grpcServer := grpc.NewServer(serverOpts...)
	cratepb.RegisterCrateServiceServer(grpcServer, grpcAdapter.NewCrateServiceHandler(crate))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Port, err)
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           httpAdapter.NewServer(crate, registry).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 2)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gRPC server listening")
		if err := grpcServer.Serve(listener); err != nil {
			serveErr <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// Start background watcher
	watcher := ports.NewWatcher(crate, collector, cfg.PollInterval)
	go watcher.Start(ctx)

	// Wait for interrupt signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server...")
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("server failed, shutting down")
	}

	// Graceful shutdown
	cancel() // Stop watcher and simulator

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown incomplete")
	}
	grpcServer.GracefulStop()

	return runErr
}

// newDetector wires the detector to real or simulated hardware
func newDetector(ctx context.Context, cfg config.Config) (*rack.Detector, error) {
	var detector *rack.Detector

	switch cfg.Hardware {
	case config.HardwareMock:
		bus := mock.NewBus(expander.Addresses[0], expander.Addresses[1])
		fs, err := mock.OneWire(cfg.W1Path, true, 45)
		if err != nil {
			return nil, fmt.Errorf("failed to build simulated one-wire tree: %w", err)
		}
		go simulate(ctx, bus, cfg.PollInterval)

		detector = rack.NewDetector(
			func() (ports.Bus, error) { return bus, nil },
			mock.NewPins().Open,
			fs,
		)
		log.Info().Msg("using simulated hardware")

	default:
		if err := rack.CheckPrivilege(); err != nil {
			return nil, err
		}
		if err := periph.Init(); err != nil {
			return nil, err
		}

		detector = rack.NewDetector(
			func() (ports.Bus, error) { return periph.OpenBus(cfg.I2CBus) },
			periph.OpenPin,
			afero.NewOsFs(),
		)
	}

	detector.W1Root = cfg.W1Path
	detector.W1Prefix = cfg.W1FamilyPrefix
	return detector, nil
}

// simulate moves simulated bottles around until ctx is cancelled
func simulate(ctx context.Context, bus *mock.Bus, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			bus.Shuffle()
		case <-ctx.Done():
			return
		}
	}
}
