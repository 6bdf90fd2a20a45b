package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/siherrmann/duckling/helper"
)

type handleState int

const (
	handleCreated handleState = iota
	handleRunning
	handleStopped
)

// Handle owns the process-wide lifecycle of an engine.
// It is started once before the first extraction and stopped once at
// shutdown. Starting twice or using the engine outside of Start and Stop
// are programmer errors and panic.
type Handle struct {
	mu     sync.RWMutex
	engine Engine
	state  handleState
	log    *slog.Logger
}

// NewHandle wraps engine in a lifecycle handle
func NewHandle(engine Engine, logger *slog.Logger) *Handle {
	if engine == nil {
		panic("engine: NewHandle called with nil engine")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{
		engine: engine,
		log:    logger,
	}
}

// Start makes the engine available. Engines implementing Pinger are pinged
// first; a failed ping leaves the handle unstarted so Start may be retried.
func (h *Handle) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case handleRunning:
		panic("engine: handle started twice")
	case handleStopped:
		panic("engine: handle started after stop")
	}

	if p, ok := h.engine.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return helper.NewError("start engine", err)
		}
	}

	h.state = handleRunning
	h.log.Info("Engine started")
	return nil
}

// Stop releases the engine. The handle cannot be restarted.
func (h *Handle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case handleCreated:
		panic("engine: handle stopped before start")
	case handleStopped:
		panic("engine: handle stopped twice")
	}

	h.state = handleStopped
	h.log.Info("Engine stopped")

	if c, ok := h.engine.(Closer); ok {
		if err := c.Close(); err != nil {
			return helper.NewError("stop engine", err)
		}
	}
	return nil
}

// Running reports whether the handle is between Start and Stop
func (h *Handle) Running() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == handleRunning
}

// Engine returns the wrapped engine. It panics unless the handle is running.
func (h *Handle) Engine() Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.mustRun()
	return h.engine
}

// Parse forwards to the wrapped engine so a Handle can be used as an Engine
func (h *Handle) Parse(ctx context.Context, req Request) ([]byte, error) {
	return h.Engine().Parse(ctx, req)
}

func (h *Handle) mustRun() {
	switch h.state {
	case handleCreated:
		panic("engine: used before start")
	case handleStopped:
		panic("engine: used after stop")
	}
}
