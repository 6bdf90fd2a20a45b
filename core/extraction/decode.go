package extraction

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/siherrmann/duckling/model"
	"github.com/tidwall/gjson"
)

// engineEntity mirrors one record of the engine output. Pointers tell
// missing fields apart from zero values.
type engineEntity struct {
	Body   *string         `json:"body"`
	Start  *int            `json:"start"`
	End    *int            `json:"end"`
	Dim    *string         `json:"dim"`
	Latent bool            `json:"latent"`
	Value  json.RawMessage `json:"value"`
}

// Decode turns the serialized engine output for text into entities.
// Every contract violation is reported as a *model.MalformedResultError.
func Decode(text string, raw []byte) ([]model.Entity, error) {
	if !gjson.ValidBytes(raw) {
		return nil, malformed(raw, "invalid json", nil)
	}
	if !gjson.ParseBytes(raw).IsArray() {
		return nil, malformed(raw, "result is not an array", nil)
	}

	var records []engineEntity
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, malformed(raw, "decode entities", err)
	}

	runes := []rune(text)
	entities := make([]model.Entity, 0, len(records))
	for i, r := range records {
		entity, err := decodeEntity(runes, r)
		if err != nil {
			return nil, malformed(raw, fmt.Sprintf("entity %d", i), err)
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

func decodeEntity(runes []rune, r engineEntity) (model.Entity, error) {
	if r.Start == nil || r.End == nil {
		return model.Entity{}, fmt.Errorf("missing span")
	}
	start, end := *r.Start, *r.End
	if start < 0 || start > end || end > len(runes) {
		return model.Entity{}, fmt.Errorf("span [%d, %d) outside of text with %d characters", start, end, len(runes))
	}

	if r.Dim == nil {
		return model.Entity{}, fmt.Errorf("missing dim")
	}
	dim, ok := model.ParseDimension(*r.Dim)
	if !ok {
		return model.Entity{}, fmt.Errorf("unknown dim %q", *r.Dim)
	}

	if len(r.Value) == 0 || !gjson.ParseBytes(r.Value).IsObject() {
		return model.Entity{}, fmt.Errorf("value is not an object")
	}
	var value model.Value
	if err := json.Unmarshal(r.Value, &value); err != nil {
		return model.Entity{}, fmt.Errorf("decode value: %w", err)
	}

	body := string(runes[start:end])
	if r.Body != nil && utf8.ValidString(*r.Body) {
		body = *r.Body
	}

	return model.Entity{
		Body:   body,
		Start:  start,
		End:    end,
		Dim:    dim,
		Latent: r.Latent,
		Value:  value,
	}, nil
}

func malformed(raw []byte, reason string, err error) error {
	return &model.MalformedResultError{
		Reason: reason,
		Raw:    raw,
		Err:    err,
	}
}
