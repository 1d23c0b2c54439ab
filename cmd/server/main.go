package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"synapse/api/grpcserver"
	"synapse/config"
	"synapse/infra/kafka"
	"synapse/ingest"
	"synapse/jobs/broadcaster"
	"synapse/service"
	"synapse/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer logger.Sync()

	// ---------------- Ingestion core ----------------

	pipe, err := ingest.New(ingest.Config{
		ArenaCapacity: cfg.Ingest.ArenaCapacity,
		QueueSize:     cfg.Ingest.QueueSize,
		Resync:        cfg.Ingest.Resync,
	}, logger)
	if err != nil {
		logger.Fatal("pipeline init failed", zap.Error(err))
	}

	svc := service.NewIngestService(pipe, logger)
	defer svc.Close()

	// ---------------- Validation ----------------

	bounds, err := validate.Preset(cfg.Validate.BoundsPreset)
	if err != nil {
		logger.Fatal("bounds preset", zap.Error(err))
	}
	symbols := validate.Permissive()
	if !cfg.Validate.Permissive {
		symbols = validate.Whitelist(cfg.Validate.Symbols)
	}
	validator := validate.New(bounds, symbols, cfg.Validate.SkewTol)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---------------- Background jobs ----------------

	if cfg.Broadcast.Enabled {
		bc, err := broadcaster.New(
			pipe.Out(),
			validator,
			cfg.Broadcast.Brokers,
			cfg.Broadcast.Topic,
			logger,
		)
		if err != nil {
			logger.Fatal("broadcaster init failed", zap.Error(err))
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	if cfg.Source.Enabled {
		src := kafka.NewSource(cfg.Source.Brokers, cfg.Source.Topic, logger)
		defer src.Close()
		go func() {
			if err := src.Run(ctx, svc); err != nil {
				logger.Error("kafka source exited", zap.Error(err))
			}
		}()
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.App.GRPCPort))
	if err != nil {
		logger.Fatal("listen failed", zap.Error(err))
	}

	grpcSrv := grpcserver.New(svc, logger)
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("grpc server exited", zap.Error(err))
		}
	}()

	logger.Info("synapse ingestor running",
		zap.String("name", cfg.App.Name),
		zap.Int("grpc_port", cfg.App.GRPCPort),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	grpcSrv.Stop()
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
