package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntities(t *testing.T) []Entity {
	var entities []Entity
	err := json.Unmarshal([]byte(`[
		{"body":"3 km","start":0,"end":4,"dim":"distance","latent":false,"value":{"type":"value","value":3,"unit":"kilometre"}},
		{"body":"3","start":0,"end":1,"dim":"number","latent":false,"value":{"type":"value","value":3}}
	]`), &entities)
	require.NoError(t, err)
	return entities
}

func TestEntity(t *testing.T) {
	entities := testEntities(t)

	t.Run("Overlapping spans", func(t *testing.T) {
		assert.True(t, entities[0].Overlaps(entities[1]))
		assert.True(t, entities[1].Overlaps(entities[0]))
	})

	t.Run("Adjacent spans do not overlap", func(t *testing.T) {
		a := Entity{Start: 0, End: 2}
		b := Entity{Start: 2, End: 4}
		assert.False(t, a.Overlaps(b))
	})

	t.Run("Grouping keeps the order", func(t *testing.T) {
		grouped := EntitiesByDimension(append(entities, entities[0]))
		assert.Len(t, grouped[DimensionDistance], 2)
		assert.Len(t, grouped[DimensionNumber], 1)
	})

	t.Run("Latent entity is not grounded", func(t *testing.T) {
		assert.True(t, entities[0].Grounded())
		assert.False(t, Entity{Latent: true}.Grounded())
	})
}

// zoneTable resolves the zones it holds and everything else to UTC
type zoneTable map[string]*time.Location

func (z zoneTable) Resolve(name string) (*time.Location, string) {
	if loc, ok := z[name]; ok {
		return loc, name
	}
	return time.UTC, UTCZone
}

func TestNewExtraction(t *testing.T) {
	t.Run("Extraction copies the call parameters", func(t *testing.T) {
		instant := time.Date(2024, time.March, 5, 17, 0, 0, 0, time.UTC)
		c := NewContext(NewReferenceTime(instant, time.UTC, UTCZone), MakeLocale(LanguageES, RegionCO))

		e := NewExtraction("3 km", c, []Dimension{DimensionDistance}, Options{WithLatent: true}, testEntities(t))

		assert.Equal(t, "3 km", e.Text)
		assert.Equal(t, "ES_CO", e.Locale.Name())
		assert.Equal(t, UTCZone, e.Zone)
		assert.True(t, e.WithLatent)
		assert.Len(t, e.Entities, 2)
		assert.NotNil(t, e.Metadata)

		rebuilt := e.Context(zoneTable{})
		assert.True(t, instant.Equal(rebuilt.ReferenceTime.Time))
		assert.Equal(t, c.Locale, rebuilt.Locale)
	})

	t.Run("Stored zone is resolved by the given zones", func(t *testing.T) {
		bogota := time.FixedZone("-05", -5*60*60)
		e := &Extraction{Zone: "America/Bogota", ReferenceTime: time.Unix(1700000000, 0).UTC()}

		rebuilt := e.Context(zoneTable{"America/Bogota": bogota})
		assert.Equal(t, "America/Bogota", rebuilt.ReferenceTime.Zone)
		assert.Equal(t, bogota, rebuilt.ReferenceTime.Time.Location())
		assert.Equal(t, "2023-11-14T17:13:20-05:00", rebuilt.ReferenceTime.ISO8601())
	})

	t.Run("Unknown stored zone rebuilds in UTC", func(t *testing.T) {
		e := &Extraction{Zone: "Continent/Country", ReferenceTime: time.Unix(0, 0)}
		rebuilt := e.Context(zoneTable{})
		assert.Equal(t, time.UTC, rebuilt.ReferenceTime.Time.Location())
		assert.Equal(t, UTCZone, rebuilt.ReferenceTime.Zone)
	})

	t.Run("Nil zones rebuild in UTC", func(t *testing.T) {
		e := &Extraction{Zone: "America/Bogota", ReferenceTime: time.Unix(0, 0)}
		rebuilt := e.Context(nil)
		assert.Equal(t, time.UTC, rebuilt.ReferenceTime.Time.Location())
		assert.Equal(t, UTCZone, rebuilt.ReferenceTime.Zone)
	})
}

func TestExtractionColumns(t *testing.T) {
	t.Run("Locale is stored by name", func(t *testing.T) {
		v, err := MakeLocale(LanguageEN, RegionGB).Value()
		require.NoError(t, err)
		assert.Equal(t, "EN_GB", v)

		var locale Locale
		require.NoError(t, locale.Scan([]byte("EN_GB")))
		assert.Equal(t, MakeLocale(LanguageEN, RegionGB), locale)

		assert.Error(t, locale.Scan(42))
	})

	t.Run("Entities are stored as JSON", func(t *testing.T) {
		v, err := Entities(testEntities(t)).Value()
		require.NoError(t, err)

		var scanned Entities
		require.NoError(t, scanned.Scan(v))
		require.Len(t, scanned, 2)
		assert.Equal(t, "kilometre", scanned[0].Value.Unit)
		assert.Equal(t, DimensionNumber, scanned[1].Dim)
	})

	t.Run("Nil entities and metadata store empty JSON", func(t *testing.T) {
		v, err := Entities(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)

		v, err = Metadata(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("Metadata scans bytes and NULL", func(t *testing.T) {
		var m Metadata
		require.NoError(t, m.Scan([]byte(`{"source":"cli","count":2}`)))
		assert.Equal(t, "cli", m["source"])
		assert.Equal(t, float64(2), m["count"])

		require.NoError(t, m.Scan(nil))
		assert.Empty(t, m)

		assert.Error(t, m.Scan(42))
	})
}

func TestErrors(t *testing.T) {
	t.Run("Typed errors match their sentinels", func(t *testing.T) {
		loadErr := &DatabaseLoadError{Path: "/nowhere"}
		assert.ErrorIs(t, loadErr, ErrDatabaseLoad)
		assert.NotErrorIs(t, loadErr, ErrMalformedResult)
		assert.Contains(t, loadErr.Error(), "/nowhere")

		malformed := &MalformedResultError{Reason: "not an array"}
		assert.ErrorIs(t, malformed, ErrMalformedResult)
		assert.Equal(t, "malformed engine result: not an array", malformed.Error())
	})
}
