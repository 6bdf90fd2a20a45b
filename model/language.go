package model

import "strings"

// Language is a language supported by the grammar engine
type Language string

const (
	LanguageAF Language = "AF"
	LanguageAR Language = "AR"
	LanguageBG Language = "BG"
	LanguageBN Language = "BN"
	LanguageCA Language = "CA"
	LanguageCS Language = "CS"
	LanguageDA Language = "DA"
	LanguageDE Language = "DE"
	LanguageEL Language = "EL"
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageET Language = "ET"
	LanguageFA Language = "FA"
	LanguageFI Language = "FI"
	LanguageFR Language = "FR"
	LanguageGA Language = "GA"
	LanguageHE Language = "HE"
	LanguageHI Language = "HI"
	LanguageHR Language = "HR"
	LanguageHU Language = "HU"
	LanguageID Language = "ID"
	LanguageIS Language = "IS"
	LanguageIT Language = "IT"
	LanguageJA Language = "JA"
	LanguageKA Language = "KA"
	LanguageKM Language = "KM"
	LanguageKN Language = "KN"
	LanguageKO Language = "KO"
	LanguageLO Language = "LO"
	LanguageML Language = "ML"
	LanguageMN Language = "MN"
	LanguageMY Language = "MY"
	LanguageNB Language = "NB"
	LanguageNE Language = "NE"
	LanguageNL Language = "NL"
	LanguagePL Language = "PL"
	LanguagePT Language = "PT"
	LanguageRO Language = "RO"
	LanguageRU Language = "RU"
	LanguageSK Language = "SK"
	LanguageSV Language = "SV"
	LanguageSW Language = "SW"
	LanguageTA Language = "TA"
	LanguageTE Language = "TE"
	LanguageTH Language = "TH"
	LanguageTR Language = "TR"
	LanguageUK Language = "UK"
	LanguageVI Language = "VI"
	LanguageZH Language = "ZH"
)

// DefaultLanguage is used whenever a language code is not recognized
const DefaultLanguage = LanguageEN

var languages = map[Language]bool{
	LanguageAF: true, LanguageAR: true, LanguageBG: true, LanguageBN: true,
	LanguageCA: true, LanguageCS: true, LanguageDA: true, LanguageDE: true,
	LanguageEL: true, LanguageEN: true, LanguageES: true, LanguageET: true,
	LanguageFA: true, LanguageFI: true, LanguageFR: true, LanguageGA: true,
	LanguageHE: true, LanguageHI: true, LanguageHR: true, LanguageHU: true,
	LanguageID: true, LanguageIS: true, LanguageIT: true, LanguageJA: true,
	LanguageKA: true, LanguageKM: true, LanguageKN: true, LanguageKO: true,
	LanguageLO: true, LanguageML: true, LanguageMN: true, LanguageMY: true,
	LanguageNB: true, LanguageNE: true, LanguageNL: true, LanguagePL: true,
	LanguagePT: true, LanguageRO: true, LanguageRU: true, LanguageSK: true,
	LanguageSV: true, LanguageSW: true, LanguageTA: true, LanguageTE: true,
	LanguageTH: true, LanguageTR: true, LanguageUK: true, LanguageVI: true,
	LanguageZH: true,
}

// ParseLanguage resolves a language code case-insensitively.
// Unknown codes resolve to DefaultLanguage, so it never fails.
func ParseLanguage(code string) Language {
	lang, ok := lookupLanguage(code)
	if !ok {
		return DefaultLanguage
	}
	return lang
}

// IsValid reports whether l belongs to the supported set
func (l Language) IsValid() bool {
	return languages[l]
}

// Name returns the canonical upper-case code
func (l Language) Name() string {
	return string(l)
}

func (l Language) String() string {
	return string(l)
}

func lookupLanguage(code string) (Language, bool) {
	lang := Language(strings.ToUpper(strings.TrimSpace(code)))
	return lang, languages[lang]
}
