package engine

import (
	"context"

	"github.com/siherrmann/duckling/model"
)

// Request is everything the grammar engine needs for one parse
type Request struct {
	Text       string
	Context    model.Context
	Dimensions []model.Dimension
	WithLatent bool
}

// Engine is the grammar engine boundary. Parse returns the serialized
// entity list, a JSON array of {body, start, end, dim, value, latent}.
// Implementations must be safe for concurrent use.
type Engine interface {
	Parse(ctx context.Context, req Request) ([]byte, error)
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(ctx context.Context, req Request) ([]byte, error)

// Parse calls f
func (f EngineFunc) Parse(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// Pinger is implemented by engines that can check they are reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by engines holding resources to release on shutdown
type Closer interface {
	Close() error
}
