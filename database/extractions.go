package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
	"github.com/siherrmann/duckling/sql"
)

// ExtractionsDBHandlerFunctions defines the interface for Extractions database operations.
type ExtractionsDBHandlerFunctions interface {
	InsertExtraction(ctx context.Context, extraction *model.Extraction) error
	SelectExtraction(ctx context.Context, rid uuid.UUID) (*model.Extraction, error)
	SelectAllExtractions(ctx context.Context, last *model.Extraction, limit int) ([]*model.Extraction, error)
	SelectExtractionsByDimension(ctx context.Context, dim model.Dimension, limit int) ([]*model.Extraction, error)
	SelectExtractionsBySearch(ctx context.Context, searchTerm string, limit int) ([]*model.Extraction, error)
	UpdateExtractionMetadata(ctx context.Context, rid uuid.UUID, metadata model.Metadata) error
	DeleteExtraction(ctx context.Context, rid uuid.UUID) error
}

// ExtractionsDBHandler handles extraction-related database operations
type ExtractionsDBHandler struct {
	db *helper.Database
}

// NewExtractionsDBHandler creates a new extractions database handler.
// It loads the extraction SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewExtractionsDBHandler(db *helper.Database, force bool) (*ExtractionsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	extractionsDbHandler := &ExtractionsDBHandler{
		db: db,
	}

	err := sql.LoadExtractionsSql(extractionsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load extractions sql", err)
	}

	err = extractionsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ExtractionsDBHandler")

	return extractionsDbHandler, nil
}

// CreateTable creates the 'extractions' table and its indexes if missing
func (h *ExtractionsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_extractions();`)
	if err != nil {
		log.Panicf("error initializing extractions table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table extractions")

	return nil
}

// InsertExtraction stores an extraction and fills its generated fields
func (h *ExtractionsDBHandler) InsertExtraction(ctx context.Context, extraction *model.Extraction) error {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_extraction($1, $2, $3, $4, $5, $6, $7, $8)`,
		extraction.Text,
		extraction.Locale,
		extraction.Zone,
		extraction.ReferenceTime,
		pq.Array(dimensionNames(extraction.Dimensions)),
		extraction.WithLatent,
		extraction.Entities,
		extraction.Metadata,
	)

	err := scanExtraction(row, extraction)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectExtraction retrieves an extraction by RID
func (h *ExtractionsDBHandler) SelectExtraction(ctx context.Context, rid uuid.UUID) (*model.Extraction, error) {
	extraction := &model.Extraction{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_extraction($1)`,
		rid,
	)

	err := scanExtraction(row, extraction)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return extraction, nil
}

// SelectAllExtractions pages through extractions, newest first.
// Pass the last record seen to get the next page, nil for the first one.
func (h *ExtractionsDBHandler) SelectAllExtractions(ctx context.Context, last *model.Extraction, limit int) ([]*model.Extraction, error) {
	var lastCreatedAt *time.Time
	var lastID int64
	if last != nil {
		lastCreatedAt = &last.CreatedAt
		lastID = last.ID
	}
	return h.query(ctx, `SELECT * FROM select_all_extractions($1, $2, $3)`, lastCreatedAt, lastID, limit)
}

// SelectExtractionsByDimension retrieves extractions that found an entity of dim
func (h *ExtractionsDBHandler) SelectExtractionsByDimension(ctx context.Context, dim model.Dimension, limit int) ([]*model.Extraction, error) {
	return h.query(ctx, `SELECT * FROM select_extractions_by_dimension($1, $2)`, dim.String(), limit)
}

// SelectExtractionsBySearch retrieves extractions whose text contains searchTerm
func (h *ExtractionsDBHandler) SelectExtractionsBySearch(ctx context.Context, searchTerm string, limit int) ([]*model.Extraction, error) {
	return h.query(ctx, `SELECT * FROM search_extractions($1, $2)`, searchTerm, limit)
}

// UpdateExtractionMetadata replaces the metadata of an extraction
func (h *ExtractionsDBHandler) UpdateExtractionMetadata(ctx context.Context, rid uuid.UUID, metadata model.Metadata) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT * FROM update_extraction_metadata($1, $2)`,
		rid,
		metadata,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteExtraction deletes an extraction by RID
func (h *ExtractionsDBHandler) DeleteExtraction(ctx context.Context, rid uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_extraction($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *ExtractionsDBHandler) query(ctx context.Context, query string, args ...interface{}) ([]*model.Extraction, error) {
	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var extractions []*model.Extraction
	for rows.Next() {
		extraction := &model.Extraction{}
		err := scanExtraction(rows, extraction)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		extractions = append(extractions, extraction)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return extractions, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExtraction(row scanner, extraction *model.Extraction) error {
	var dims pq.StringArray
	err := row.Scan(
		&extraction.ID,
		&extraction.RID,
		&extraction.Text,
		&extraction.Locale,
		&extraction.Zone,
		&extraction.ReferenceTime,
		&dims,
		&extraction.WithLatent,
		&extraction.Entities,
		&extraction.Metadata,
		&extraction.CreatedAt,
	)
	if err != nil {
		return err
	}

	extraction.Dimensions = model.ParseDimensions(dims)
	return nil
}

func dimensionNames(dims []model.Dimension) []string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.String()
	}
	return names
}
