// Package signal cancels a context when the process is asked to stop.
//
// The player runs in raw terminal mode, so Ctrl+C arrives as a key press;
// SIGTERM and SIGHUP still have to end playback and dispose the clock.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler wraps a context and cancels it on the first shutdown signal.
type Handler struct {
	ctx     context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel  context.CancelFunc
	sigChan chan os.Signal
	done    chan struct{}

	mu       sync.Mutex
	received os.Signal

	once     sync.Once
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT, SIGTERM and SIGHUP.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	ctx = h.Context()
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:    ctx,
		cancel: cancel,
		// Buffer of 1 so signal.Notify never drops a signal while we are busy.
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go h.listen()

	return h
}

// Context returns the context cancelled by the first signal or by Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Received returns the signal that cancelled the context, or nil.
func (h *Handler) Received() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop releases the signal subscription and cancels the context. Safe to call
// more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel()
	})
}

// listen only acts on the first signal; later ones are drained so delivery
// never blocks.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
