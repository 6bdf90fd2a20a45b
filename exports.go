package duckling

import (
	"log/slog"

	"github.com/siherrmann/duckling/core/timezone"
	"github.com/siherrmann/duckling/model"
)

type (
	Context       = model.Context
	Dimension     = model.Dimension
	Entity        = model.Entity
	Language      = model.Language
	Locale        = model.Locale
	ReferenceTime = model.ReferenceTime
	TimeZones     = timezone.Database
)

// LoadTimeZones loads the timezone database at path
func LoadTimeZones(path string) (*TimeZones, error) {
	return timezone.Load(path, slog.Default())
}

// CurrentRefTime returns the current instant in zone
func CurrentRefTime(tzdb *TimeZones, zone string) ReferenceTime {
	return timezone.CurrentReferenceTime(tzdb, zone)
}

// ParseRefTime returns the instant of epochSeconds in zone
func ParseRefTime(tzdb *TimeZones, zone string, epochSeconds int64) ReferenceTime {
	return timezone.ReferenceTimeFromEpoch(tzdb, zone, epochSeconds)
}

// ParseLang resolves a language code, EN if unknown
func ParseLang(code string) Language {
	return model.ParseLanguage(code)
}

// DefaultLocaleLang returns the region-less locale of lang
func DefaultLocaleLang(lang Language) Locale {
	return model.DefaultLocale(lang)
}

// ParseLocale resolves a LANG_REGION string, fallback if it cannot
func ParseLocale(input string, fallback Locale) Locale {
	return model.ParseLocale(input, fallback)
}

// ParseDimensions keeps the known dimension names
func ParseDimensions(names []string) []Dimension {
	return model.ParseDimensions(names)
}

// NewContext combines a reference time and a locale
func NewContext(referenceTime ReferenceTime, locale Locale) Context {
	return model.NewContext(referenceTime, locale)
}
