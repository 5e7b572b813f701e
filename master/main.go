// Command master lists the running race servers for pilots looking for a
// race.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/hoverrace-mp/shared/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if err := run(*port, *ttl, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "master:", err)
		os.Exit(1)
	}
}

func run(port int, ttl time.Duration, logLevel string) error {
	base, err := logging.New(logLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = base.Sync() }()
	log := logging.Component(base, "master")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := NewRegistry(ttl, log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewMux(reg, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reg.Run(ctx, 30*time.Second)
		return nil
	})
	g.Go(func() error {
		log.Info("Master listening", zap.String("addr", srv.Addr), zap.Duration("ttl", ttl))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
