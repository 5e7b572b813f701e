package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/server/core"
	"github.com/automoto/hoverrace-mp/shared/logging"
	"github.com/automoto/hoverrace-mp/shared/protocol"
	"github.com/automoto/hoverrace-mp/systems"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to the server settings YAML file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	settings, err := config.LoadServerSettings(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(settings.LogLevel, settings.Development)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	track, err := core.LoadTrack(settings.TrackPath)
	if err != nil {
		return err
	}

	var records *systems.Records
	if settings.RecordsApp != "" {
		records, err = systems.OpenRecords(settings.RecordsApp, log)
		if err != nil {
			log.Warn("Lap records disabled", zap.Error(err))
			records = nil
		}
	}

	server, err := core.NewServer(settings, track, records, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Starting HoverRace server",
		zap.String("name", settings.Name),
		zap.Int("port", settings.Port),
		zap.Int("tickRate", settings.TickRate),
		zap.String("track", track.Name),
		zap.String("session", server.Session()),
	)

	// The transport cannot be stopped; the process exits when the race does.
	go func() {
		if err := server.Listen(); err != nil {
			log.Error("Transport stopped", zap.Error(err))
			cancel()
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return server.Run(ctx)
	})
	if settings.MasterURL != "" {
		reg := core.NewRegistration(settings, server, log)
		g.Go(func() error {
			return reg.Run(ctx, track.Name)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
