package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// ShutdownHook is a function executed after a termination signal is received
// but before the HTTP server begins its graceful shutdown. If a hook returns
// an error it will be logged; shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown starts the provided *http.Server and blocks until a termination
// signal (SIGINT or SIGTERM) is received. It then runs any provided hooks (in order)
// with a context that shares the overall shutdown deadline, and finally gracefully
// shuts down the server.
//
// Typical usage in main:
//
//	server := common.NewServerWithTimeouts(&http.Server{Addr: ":8080", Handler: mux}, cfg.Timeouts)
//	common.RunServerWithShutdown(server, "discovery", cfg.Timeouts, logger, saveHook)
func RunServerWithShutdown(server *http.Server, name string, cfg TimeoutConfig, logger zerolog.Logger, hooks ...ShutdownHook) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	runUntil(server, name, cfg, logger, stop, hooks...)
}

func runUntil(server *http.Server, name string, cfg TimeoutConfig, logger zerolog.Logger, stop <-chan os.Signal, hooks ...ShutdownHook) {
	hookTimeout := cfg.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	shutdownTimeout := cfg.Shutdown
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}

	failed := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msgf("starting %s", name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-stop:
		logger.Info().Msgf("shutdown signal received for %s", name)
	case err := <-failed:
		logger.Error().Err(err).Msgf("%s listen error", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if err := h(hCtx); err != nil {
			logger.Warn().Err(err).Int("hook", i).Msg("shutdown hook failed")
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			logger.Warn().Int("hook", i).Msg("shutdown hook timed out")
		}
		hCancel()
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msgf("%s shutdown complete", name)
	}
}

// TimeoutConfig holds server and shutdown related timeouts. Values are
// parsed from the environment as Go durations ("5s", "1m").
type TimeoutConfig struct {
	ReadHeader time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	Read       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	Write      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	Idle       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	Shutdown   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	Hook       time.Duration `env:"HOOK_TIMEOUT" envDefault:"5s"`
}

// NewServerWithTimeouts attaches timeout settings to an existing *http.Server or creates a new one if nil.
func NewServerWithTimeouts(base *http.Server, cfg TimeoutConfig) *http.Server {
	if base == nil {
		base = &http.Server{}
	}
	base.ReadHeaderTimeout = cfg.ReadHeader
	base.ReadTimeout = cfg.Read
	base.WriteTimeout = cfg.Write
	base.IdleTimeout = cfg.Idle
	return base
}
