package duckling

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/duckling/core/engine"
	"github.com/siherrmann/duckling/core/extraction"
	"github.com/siherrmann/duckling/core/timezone"
	"github.com/siherrmann/duckling/database"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
	loadSql "github.com/siherrmann/duckling/sql"
	"golang.org/x/sync/errgroup"
)

// Duckling bundles the timezone database, the engine lifecycle and the
// optional extraction store behind one entry point
type Duckling struct {
	TimeZones   *timezone.Database
	Handle      *engine.Handle
	Extractor   *extraction.Extractor
	DB          *helper.Database               // Optional, set by UseStore
	Extractions *database.ExtractionsDBHandler // Optional, set by UseStore
	// Logging
	log *slog.Logger
}

// New creates a started Duckling talking to the server in config.
// The timezone database is loaded once here and shared by all calls.
func New(config *helper.Configuration) (*Duckling, error) {
	if config == nil {
		return nil, helper.NewError("configuration validation", fmt.Errorf("configuration is nil"))
	}

	logger := helper.NewLogger(os.Stdout, config.Level())

	tzdb, err := timezone.Load(config.TimeZoneDBPath, logger)
	if err != nil {
		return nil, helper.NewError("load timezone database", err)
	}

	httpEngine, err := engine.NewHTTPEngine(&config.Engine, logger)
	if err != nil {
		return nil, helper.NewError("create engine", err)
	}

	d := NewWithEngine(tzdb, httpEngine, logger)

	ctx, cancel := context.WithTimeout(context.Background(), config.Engine.Timeout)
	defer cancel()
	if err := d.Start(ctx); err != nil {
		return nil, err
	}

	if config.StoreEnabled {
		dbConfig, err := helper.NewDatabaseConfiguration()
		if err != nil {
			_ = d.Close()
			return nil, helper.NewError("create database configuration", err)
		}
		if err := d.UseStore(dbConfig); err != nil {
			_ = d.Close()
			return nil, err
		}
	}

	return d, nil
}

// NewWithEngine creates an unstarted Duckling around any engine.
// Call Start before the first Parse.
func NewWithEngine(tzdb *timezone.Database, e engine.Engine, logger *slog.Logger) *Duckling {
	if logger == nil {
		logger = slog.Default()
	}

	handle := engine.NewHandle(e, logger)

	return &Duckling{
		TimeZones: tzdb,
		Handle:    handle,
		Extractor: extraction.NewExtractor(handle, logger),
		log:       logger,
	}
}

// Start starts the engine handle
func (d *Duckling) Start(ctx context.Context) error {
	return d.Handle.Start(ctx)
}

// Close stops the engine and closes the store database if one is used
func (d *Duckling) Close() error {
	var stopErr error
	if d.Handle != nil && d.Handle.Running() {
		stopErr = d.Handle.Stop()
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			return helper.NewError("close database", err)
		}
	}
	return stopErr
}

// UseStore connects to PostgreSQL and persists every ParseAndStore call
func (d *Duckling) UseStore(config *helper.DatabaseConfiguration) error {
	db := helper.NewDatabase("duckling", config, d.log)

	if err := loadSql.Init(db.Instance); err != nil {
		_ = db.Close()
		return helper.NewError("initialize database extensions", err)
	}

	extractions, err := database.NewExtractionsDBHandler(db, false)
	if err != nil {
		_ = db.Close()
		return helper.NewError("create extractions handler", err)
	}

	d.DB = db
	d.Extractions = extractions
	return nil
}

// SetStore sets the extraction store
func (d *Duckling) SetStore(extractions *database.ExtractionsDBHandler) {
	d.Extractions = extractions
}

// CurrentRefTime returns the current instant in zone, UTC if zone is unknown
func (d *Duckling) CurrentRefTime(zone string) model.ReferenceTime {
	return timezone.CurrentReferenceTime(d.TimeZones, zone)
}

// ParseRefTime returns the instant of epochSeconds in zone, UTC if zone is unknown
func (d *Duckling) ParseRefTime(zone string, epochSeconds int64) model.ReferenceTime {
	return timezone.ReferenceTimeFromEpoch(d.TimeZones, zone, epochSeconds)
}

// Parse extracts the entities of dims from text.
// withLatent includes less certain parses, e.g. "7" as an hour of the day.
func (d *Duckling) Parse(ctx context.Context, text string, c model.Context, dims []model.Dimension, withLatent bool) ([]model.Entity, error) {
	return d.Extractor.Extract(ctx, text, c, dims, model.Options{WithLatent: withLatent})
}

// ParseAll parses many texts with the same context concurrently.
// At most limit parses run at once, limit <= 0 means no limit.
// Results are in the order of texts; the first error cancels the rest.
func (d *Duckling) ParseAll(ctx context.Context, texts []string, c model.Context, dims []model.Dimension, withLatent bool, limit int) ([][]model.Entity, error) {
	results := make([][]model.Entity, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, text := range texts {
		g.Go(func() error {
			entities, err := d.Parse(gctx, text, c, dims, withLatent)
			if err != nil {
				return helper.NewError(fmt.Sprintf("parse text %d", i), err)
			}
			results[i] = entities
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseAndStore parses text and stores the extraction
func (d *Duckling) ParseAndStore(ctx context.Context, text string, c model.Context, dims []model.Dimension, withLatent bool) (*model.Extraction, error) {
	if d.Extractions == nil {
		return nil, helper.NewError("parse and store", fmt.Errorf("store not set, use UseStore() first"))
	}

	opts := model.Options{WithLatent: withLatent}
	entities, err := d.Extractor.Extract(ctx, text, c, dims, opts)
	if err != nil {
		return nil, err
	}

	extraction := model.NewExtraction(text, c, dims, opts, entities)
	if err := d.Extractions.InsertExtraction(ctx, extraction); err != nil {
		return nil, helper.NewError("insert extraction", err)
	}

	d.log.Info("Stored extraction", slog.String("rid", extraction.RID.String()), slog.Int("entities", len(entities)))

	return extraction, nil
}
