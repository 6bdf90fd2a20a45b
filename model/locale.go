package model

import (
	"encoding/json"
	"strings"
)

// Region is a country qualifier of a locale
type Region string

const (
	RegionAR Region = "AR"
	RegionAU Region = "AU"
	RegionBE Region = "BE"
	RegionBR Region = "BR"
	RegionBZ Region = "BZ"
	RegionCA Region = "CA"
	RegionCL Region = "CL"
	RegionCN Region = "CN"
	RegionCO Region = "CO"
	RegionEG Region = "EG"
	RegionES Region = "ES"
	RegionGB Region = "GB"
	RegionHK Region = "HK"
	RegionIE Region = "IE"
	RegionIN Region = "IN"
	RegionJM Region = "JM"
	RegionMO Region = "MO"
	RegionMX Region = "MX"
	RegionNZ Region = "NZ"
	RegionPE Region = "PE"
	RegionPH Region = "PH"
	RegionTT Region = "TT"
	RegionTW Region = "TW"
	RegionUS Region = "US"
	RegionVE Region = "VE"
	RegionZA Region = "ZA"
)

// NoRegion is the placeholder rendered for locales without a region
const NoRegion = "XX"

// localeRegions lists the regions each language has region-specific rules for.
// Languages missing here only have their default locale.
var localeRegions = map[Language]map[Region]bool{
	LanguageAR: {RegionEG: true},
	LanguageEN: {
		RegionAU: true, RegionBZ: true, RegionCA: true, RegionGB: true,
		RegionIN: true, RegionIE: true, RegionJM: true, RegionNZ: true,
		RegionPH: true, RegionZA: true, RegionTT: true, RegionUS: true,
	},
	LanguageES: {
		RegionAR: true, RegionCL: true, RegionCO: true, RegionES: true,
		RegionMX: true, RegionPE: true, RegionVE: true,
	},
	LanguageNL: {RegionBE: true},
	LanguagePT: {RegionBR: true},
	LanguageZH: {RegionCN: true, RegionHK: true, RegionMO: true, RegionTW: true},
}

// Locale is a language with an optional region
type Locale struct {
	Language Language `json:"language"`
	Region   Region   `json:"region,omitempty"`
}

// DefaultLocale returns the region-less locale of lang
func DefaultLocale(lang Language) Locale {
	if !lang.IsValid() {
		lang = DefaultLanguage
	}
	return Locale{Language: lang}
}

// MakeLocale combines lang and region. The region is kept only when the
// language has rules for it, otherwise the default locale is returned.
func MakeLocale(lang Language, region Region) Locale {
	locale := DefaultLocale(lang)
	if localeRegions[locale.Language][region] {
		locale.Region = region
	}
	return locale
}

// ParseLocale resolves a LANG_REGION string against fallback.
// Input that is not exactly a known language plus a region part, bare
// region codes included, resolves to fallback unchanged. It never fails.
func ParseLocale(input string, fallback Locale) Locale {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	parts := strings.Split(normalized, "_")
	if len(parts) != 2 {
		return fallback
	}

	lang, ok := lookupLanguage(parts[0])
	if !ok {
		return fallback
	}

	return MakeLocale(lang, Region(parts[1]))
}

// HasRegion reports whether the locale is region specific
func (l Locale) HasRegion() bool {
	return l.Region != ""
}

// Name returns the canonical name, LANG_REGION or LANG_XX
func (l Locale) Name() string {
	if !l.HasRegion() {
		return string(l.Language) + "_" + NoRegion
	}
	return string(l.Language) + "_" + string(l.Region)
}

func (l Locale) String() string {
	return l.Name()
}

// HTTPParam returns the form the Duckling server expects, e.g. es_CO
func (l Locale) HTTPParam() string {
	if !l.HasRegion() {
		return strings.ToLower(string(l.Language))
	}
	return strings.ToLower(string(l.Language)) + "_" + string(l.Region)
}

// MarshalJSON renders the canonical name
func (l Locale) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Name())
}

// UnmarshalJSON reads a canonical name. Unparseable names decode to the
// default locale of DefaultLanguage.
func (l *Locale) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	fallback := DefaultLocale(DefaultLanguage)
	if lang, ok := lookupLanguage(name); ok {
		fallback = DefaultLocale(lang)
	}
	*l = ParseLocale(name, fallback)
	return nil
}
