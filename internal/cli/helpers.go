package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Anmol09876/abacus/internal/config"
	"github.com/Anmol09876/abacus/internal/logging"
	"github.com/Anmol09876/abacus/pkg/adapters/file"
	"github.com/Anmol09876/abacus/pkg/adapters/memory"
	redisstore "github.com/Anmol09876/abacus/pkg/adapters/redis"
	"github.com/Anmol09876/abacus/pkg/ports"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger writing to stderr, so it
// stays separate from the calculator UI on stdout.
func CreateLogger(level string) *slog.Logger {
	switch strings.ToLower(level) {
	case "debug":
		return logging.New(slog.LevelDebug)
	case "info":
		return logging.New(slog.LevelInfo)
	case "warn":
		return logging.New(slog.LevelWarn)
	case "error":
		return logging.New(slog.LevelError)
	}
	return logging.NewNop()
}

// NewStore builds the session store selected by the configuration. The
// returned closer is a no-op for backends without connections.
func NewStore(cfg *config.Config) (ports.StateStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case "", "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.New(cfg.Store.Path), noop, nil
	case "redis":
		if cfg.Store.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("redis backend requires store.redis.addr")
		}
		store := redisstore.New(
			cfg.Store.Redis.Addr,
			cfg.Store.Redis.Password,
			cfg.Store.Redis.DB,
			redisstore.WithTTL(cfg.Store.Redis.TTL.Std()),
		)
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a
// cancellation signal.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	// Check before blocking
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}

	// Read (This blocks!)
	n, err = r.base.Read(p)

	// Check after returning
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		err.Error() == "interrupted" ||
		errors.Is(err, io.EOF) ||
		(errors.Unwrap(err) != nil && isInterrupted(errors.Unwrap(err)))
}

// HandleExecutionError maps interruptions to a clean exit.
func HandleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
