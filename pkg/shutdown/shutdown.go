package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Closers collects release funcs for clients opened during startup
// (database, firestore, storage, redis) and runs them in reverse order.
type Closers struct {
	mu  sync.Mutex
	fns []namedCloser
}

type namedCloser struct {
	name string
	fn   func() error
}

func (c *Closers) Add(name string, fn func() error) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.fns = append(c.fns, namedCloser{name: name, fn: fn})
	c.mu.Unlock()
}

// Close runs every registered func once, newest first, and joins the errors.
func (c *Closers) Close(log *slog.Logger) error {
	c.mu.Lock()
	fns := c.fns
	c.fns = nil
	c.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i].fn(); err != nil {
			if log != nil {
				log.Error("close failed", slog.String("resource", fns[i].name), slog.Any("err", err))
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
