package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Value types reported by the engine
const (
	ValueTypeValue    = "value"
	ValueTypeInterval = "interval"
)

// Value is the dimension-dependent payload of an entity.
// The common fields are decoded, the full payload is kept in Raw so fields
// introduced by newer engines stay reachable through Get.
type Value struct {
	Type       string      `json:"type,omitempty"`
	Value      interface{} `json:"value,omitempty"`
	Unit       string      `json:"unit,omitempty"`
	Grain      string      `json:"grain,omitempty"`
	From       *Value      `json:"from,omitempty"`
	To         *Value      `json:"to,omitempty"`
	Values     []Value     `json:"values,omitempty"`
	Normalized *Value      `json:"normalized,omitempty"`
	Product    string      `json:"product,omitempty"`
	Domain     string      `json:"domain,omitempty"`
	Issuer     string      `json:"issuer,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type valueFields Value

// UnmarshalJSON decodes the known fields and keeps the raw payload
func (v *Value) UnmarshalJSON(data []byte) error {
	var fields valueFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*v = Value(fields)
	v.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the raw payload when present so unknown fields survive
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.Raw) > 0 {
		return v.Raw, nil
	}
	return json.Marshal(valueFields(v))
}

// Get looks up a field of the raw payload with gjson path syntax,
// e.g. "normalized.value" or "values.0.grain"
func (v Value) Get(path string) gjson.Result {
	if len(v.Raw) == 0 {
		raw, err := json.Marshal(valueFields(v))
		if err != nil {
			return gjson.Result{}
		}
		return gjson.GetBytes(raw, path)
	}
	return gjson.GetBytes(v.Raw, path)
}

// IsInterval reports whether the value is a from/to interval
func (v Value) IsInterval() bool {
	return v.Type == ValueTypeInterval
}

// Number returns a numeric value
func (v Value) Number() (float64, bool) {
	n, ok := v.Value.(float64)
	return n, ok
}

// Text returns a string value
func (v Value) Text() (string, bool) {
	s, ok := v.Value.(string)
	return s, ok
}

// Time parses a time value. Offsets of the engine's rendering are kept.
func (v Value) Time() (time.Time, error) {
	s, ok := v.Text()
	if !ok {
		return time.Time{}, fmt.Errorf("value %v is not a time", v.Value)
	}
	return ParseISO8601(s)
}

// Interval returns the bounds of an interval value.
// Open ends are returned as the zero time.
func (v Value) Interval() (from time.Time, to time.Time, err error) {
	if !v.IsInterval() {
		return from, to, fmt.Errorf("value of type %q is not an interval", v.Type)
	}
	if v.From != nil {
		if from, err = v.From.Time(); err != nil {
			return from, to, err
		}
	}
	if v.To != nil {
		if to, err = v.To.Time(); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
