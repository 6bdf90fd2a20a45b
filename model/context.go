package model

import "time"

// UTCZone is the zone every unknown timezone name resolves to
const UTCZone = "UTC"

// iso8601Seconds keeps offset seconds, e.g. local mean time -04:56:16
const iso8601Seconds = "2006-01-02T15:04:05.999999999Z07:00:00"

// ZoneResolver turns a zone name into a location and the name actually used.
// A nil location means UTC.
type ZoneResolver interface {
	Resolve(name string) (*time.Location, string)
}

// ReferenceTime is the instant relative expressions are resolved against,
// tagged with the zone used to interpret it
type ReferenceTime struct {
	Time time.Time `json:"time"`
	Zone string    `json:"zone"`
}

// NewReferenceTime expresses t in loc. A nil loc means UTC.
// Instants whose local year falls outside 1 to 9999 are clamped to that
// range, so ISO8601 stays a four digit year.
func NewReferenceTime(t time.Time, loc *time.Location, zone string) ReferenceTime {
	if loc == nil {
		loc = time.UTC
		zone = UTCZone
	}
	return ReferenceTime{
		Time: clampYear(t.In(loc)),
		Zone: zone,
	}
}

func clampYear(t time.Time) time.Time {
	switch {
	case t.Year() < 1:
		return time.Date(1, time.January, 1, 0, 0, 0, 0, t.Location())
	case t.Year() > 9999:
		return time.Date(9999, time.December, 31, 23, 59, 59, 999999999, t.Location())
	}
	return t
}

// ISO8601 renders the instant with its offset and full precision.
// Parsing the result with ParseISO8601 yields exactly the same instant.
func (r ReferenceTime) ISO8601() string {
	if _, offset := r.Time.Zone(); offset%60 != 0 {
		return r.Time.Format(iso8601Seconds)
	}
	return r.Time.Format(time.RFC3339Nano)
}

// ParseISO8601 parses RFC 3339 timestamps and the ±hh:mm:ss offsets
// ISO8601 writes for zones with offset seconds
func ParseISO8601(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t, errSeconds := time.Parse(iso8601Seconds, s); errSeconds == nil {
		return t, nil
	}
	return time.Time{}, err
}

// UTC returns the instant normalized to UTC
func (r ReferenceTime) UTC() time.Time {
	return r.Time.UTC()
}

// UnixMilli returns the instant as epoch milliseconds
func (r ReferenceTime) UnixMilli() int64 {
	return r.Time.UnixMilli()
}

func (r ReferenceTime) String() string {
	return r.ISO8601()
}

// Context is the reference time and locale of one extraction
type Context struct {
	ReferenceTime ReferenceTime `json:"reference_time"`
	Locale        Locale        `json:"locale"`
}

// NewContext combines a reference time and a locale
func NewContext(referenceTime ReferenceTime, locale Locale) Context {
	return Context{
		ReferenceTime: referenceTime,
		Locale:        locale,
	}
}

// Options toggles optional extraction behavior
type Options struct {
	// WithLatent includes less certain parses, e.g. "7" as an hour of the day
	WithLatent bool `json:"with_latent"`
}
