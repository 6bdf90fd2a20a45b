package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Extraction is the stored record of one extraction call
type Extraction struct {
	ID            int64       `json:"id"`
	RID           uuid.UUID   `json:"rid"`
	Text          string      `json:"text"`
	Locale        Locale      `json:"locale"`
	Zone          string      `json:"zone"`
	ReferenceTime time.Time   `json:"reference_time"`
	Dimensions    []Dimension `json:"dimensions"`
	WithLatent    bool        `json:"with_latent"`
	Entities      Entities    `json:"entities"`
	Metadata      Metadata    `json:"metadata,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewExtraction builds the record of an extraction that returned entities
func NewExtraction(text string, c Context, dims []Dimension, opts Options, entities []Entity) *Extraction {
	return &Extraction{
		Text:          text,
		Locale:        c.Locale,
		Zone:          c.ReferenceTime.Zone,
		ReferenceTime: c.ReferenceTime.Time,
		Dimensions:    dims,
		WithLatent:    opts.WithLatent,
		Entities:      entities,
		Metadata:      Metadata{},
	}
}

// Context rebuilds the extraction context of the record with the zones
// of the process. A nil resolver rebuilds it in UTC.
func (e *Extraction) Context(zones ZoneResolver) Context {
	if zones == nil {
		return NewContext(NewReferenceTime(e.ReferenceTime, nil, UTCZone), e.Locale)
	}
	loc, zone := zones.Resolve(e.Zone)
	return NewContext(NewReferenceTime(e.ReferenceTime, loc, zone), e.Locale)
}

// Value stores the locale by its canonical name
func (l Locale) Value() (driver.Value, error) {
	return l.Name(), nil
}

// Scan reads a locale from its canonical name
func (l *Locale) Scan(value interface{}) error {
	var name string
	switch v := value.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Locale", value)
	}
	raw, err := json.Marshal(name)
	if err != nil {
		return err
	}
	return l.UnmarshalJSON(raw)
}

// Metadata is free-form JSONB data attached to a record
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	if s, ok := value.(Metadata); ok {
		*m = s
		return nil
	}
	return scanJSON(value, m)
}

// Entities is a JSONB encoded entity list
type Entities []Entity

// Value implements the driver.Valuer interface for database storage
func (e Entities) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Entity(e))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database retrieval
func (e *Entities) Scan(value interface{}) error {
	if value == nil {
		*e = Entities{}
		return nil
	}
	return scanJSON(value, e)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("type assertion to []byte failed")
}
