package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/siherrmann/duckling/core/engine"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
)

// Extractor composes extraction requests, calls the engine and decodes
// its output. It holds no state between calls and is safe for concurrent use.
type Extractor struct {
	engine engine.Engine
	log    *slog.Logger
}

// NewExtractor creates an extractor backed by e
func NewExtractor(e engine.Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		engine: e,
		log:    logger,
	}
}

// Extract finds the entities of the given dimensions in text.
// Entities are returned in engine order. Without dimensions nothing is
// extracted and the engine is not called. Engine errors are returned
// as is, undecodable output as *model.MalformedResultError.
func (x *Extractor) Extract(ctx context.Context, text string, c model.Context, dims []model.Dimension, opts model.Options) ([]model.Entity, error) {
	if len(dims) == 0 {
		return []model.Entity{}, nil
	}
	if x.engine == nil {
		return nil, helper.NewError("extract", fmt.Errorf("engine not set"))
	}

	req := engine.Request{
		Text:       text,
		Context:    c,
		Dimensions: dims,
		WithLatent: opts.WithLatent,
	}

	start := time.Now()
	raw, err := x.engine.Parse(ctx, req)
	if err != nil {
		return nil, helper.NewError("engine parse", err)
	}

	entities, err := Decode(text, raw)
	if err != nil {
		x.log.Error("Engine returned malformed result", slog.String("error", err.Error()), slog.Int("bytes", len(raw)))
		return nil, err
	}

	x.log.Debug("Extracted entities",
		slog.Int("entities", len(entities)),
		slog.String("locale", c.Locale.Name()),
		slog.String("zone", c.ReferenceTime.Zone),
		slog.Duration("took", time.Since(start)),
	)

	return entities, nil
}
