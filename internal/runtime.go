package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/sendlater/pkg/logger"
)

// defaultAddr keeps the panel on loopback unless an address is given.
const defaultAddr = "127.0.0.1:8025"

type runtimeConfig struct {
	handler         http.Handler
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
	stop            <-chan struct{}
}

func (c *runtimeConfig) applyDefaults() {
	if c.address == "" {
		c.address = defaultAddr
	}
	if c.shutdownTimeout <= 0 {
		c.shutdownTimeout = defaultShutdownTimeout
	}
	if c.logger == nil {
		c.logger = logger.NewNope()
	}
	if c.baseCtx == nil {
		c.baseCtx = context.Background()
	}
}

// runServer serves until SIGINT/SIGTERM, the end of baseCtx, a close of stop,
// or a serve error. Startup hooks run once the listener is bound and shutdown
// hooks run after the server has drained, both in order.
func runServer(cfg runtimeConfig) error {
	cfg.applyDefaults()
	log := cfg.logger

	srv := &http.Server{
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, stopSignals := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.address, err)
	}
	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			_ = ln.Close()
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("panel listening", slog.String("address", ln.Addr().String()))
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info("signal received")
	case <-cfg.stop:
		log.Info("exit requested")
	}

	return shutdown(srv, cfg)
}

// shutdown drains srv, then runs the shutdown hooks within one shared deadline.
func shutdown(srv *http.Server, cfg runtimeConfig) error {
	log := cfg.logger
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain: %w", err))
	}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	log.Info("panel stopped")
	return nil
}
