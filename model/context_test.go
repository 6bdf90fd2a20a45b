package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceTime(t *testing.T) {
	instant := time.Date(2024, time.March, 5, 17, 30, 15, 123456789, time.UTC)

	t.Run("Reference time is expressed in the zone", func(t *testing.T) {
		loc := time.FixedZone("COT", -5*60*60)
		ref := NewReferenceTime(instant, loc, "America/Bogota")

		assert.Equal(t, "America/Bogota", ref.Zone)
		assert.Equal(t, 12, ref.Time.Hour())
		assert.True(t, instant.Equal(ref.UTC()))
		assert.Equal(t, instant.UnixMilli(), ref.UnixMilli())
	})

	t.Run("Nil location means UTC", func(t *testing.T) {
		ref := NewReferenceTime(instant, nil, "Nowhere/Zone")
		assert.Equal(t, UTCZone, ref.Zone)
		assert.Equal(t, time.UTC, ref.Time.Location())
	})
}

func TestReferenceTimeISO8601(t *testing.T) {
	t.Run("Rendering keeps the offset", func(t *testing.T) {
		loc := time.FixedZone("COT", -5*60*60)
		ref := NewReferenceTime(time.Date(2024, time.March, 5, 17, 0, 0, 0, time.UTC), loc, "America/Bogota")
		assert.Equal(t, "2024-03-05T12:00:00-05:00", ref.ISO8601())
		assert.Equal(t, ref.ISO8601(), ref.String())
	})

	t.Run("Parsing the rendering yields the same instant", func(t *testing.T) {
		instant := time.Date(2021, time.December, 31, 23, 59, 59, 987654321, time.UTC)
		loc := time.FixedZone("X", 3*60*60+30*60)
		ref := NewReferenceTime(instant, loc, "Asia/Tehran")

		parsed, err := ParseISO8601(ref.ISO8601())
		require.NoError(t, err)
		assert.True(t, instant.Equal(parsed))
	})

	t.Run("Local mean time offsets keep their seconds", func(t *testing.T) {
		// 1906-08-16T20:26:40Z
		instant := time.Unix(-2000000000, 0)
		cases := []struct {
			zone     string
			offset   int
			expected string
		}{
			{"America/Bogota", -(4*60*60 + 56*60 + 16), "1906-08-16T15:30:24-04:56:16"},
			{"Europe/Amsterdam", 19*60 + 32, "1906-08-16T20:46:12+00:19:32"},
		}

		for _, c := range cases {
			ref := NewReferenceTime(instant, time.FixedZone("LMT", c.offset), c.zone)
			assert.Equal(t, c.expected, ref.ISO8601())

			parsed, err := ParseISO8601(ref.ISO8601())
			require.NoError(t, err)
			assert.True(t, instant.Equal(parsed), "Expected %s to parse back to %s", ref.ISO8601(), instant.UTC())
			_, offset := parsed.Zone()
			assert.Equal(t, c.offset, offset)
		}
	})

	t.Run("Years beyond 9999 are clamped", func(t *testing.T) {
		ref := NewReferenceTime(time.Unix(300000000000, 0), nil, UTCZone)
		assert.Equal(t, "9999-12-31T23:59:59.999999999Z", ref.ISO8601())

		parsed, err := ParseISO8601(ref.ISO8601())
		require.NoError(t, err)
		assert.True(t, ref.Time.Equal(parsed))
	})

	t.Run("Years before 1 are clamped", func(t *testing.T) {
		loc := time.FixedZone("COT", -5*60*60)
		ref := NewReferenceTime(time.Unix(-100000000000, 0), loc, "America/Bogota")
		assert.Equal(t, "0001-01-01T00:00:00-05:00", ref.ISO8601())

		_, err := ParseISO8601(ref.ISO8601())
		assert.NoError(t, err)
	})

	t.Run("Clamping is measured in the local zone", func(t *testing.T) {
		instant := time.Date(9999, time.December, 31, 20, 0, 0, 0, time.UTC)
		ref := NewReferenceTime(instant, time.FixedZone("+14", 14*60*60), "Pacific/Kiritimati")
		assert.Equal(t, 9999, ref.Time.Year())

		_, err := ParseISO8601(ref.ISO8601())
		assert.NoError(t, err)
	})
}

func TestParseISO8601(t *testing.T) {
	t.Run("RFC 3339 is accepted", func(t *testing.T) {
		parsed, err := ParseISO8601("2024-03-19T07:00:00.000-05:00")
		require.NoError(t, err)
		assert.True(t, time.Date(2024, time.March, 19, 12, 0, 0, 0, time.UTC).Equal(parsed))
	})

	t.Run("Invalid text returns the RFC 3339 error", func(t *testing.T) {
		_, err := ParseISO8601("tomorrow")
		assert.Error(t, err)
	})
}

func TestNewContext(t *testing.T) {
	t.Run("Context holds both parts", func(t *testing.T) {
		ref := NewReferenceTime(time.Unix(0, 0), nil, UTCZone)
		locale := MakeLocale(LanguageES, RegionCO)

		c := NewContext(ref, locale)
		assert.Equal(t, ref, c.ReferenceTime)
		assert.Equal(t, locale, c.Locale)
	})
}
