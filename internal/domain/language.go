package domain

// Language is a supported response language code.
type Language string

// The closed set of supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
	LanguageFrench  Language = "fr"
)

// DefaultLanguage is the fallback when detection is inconclusive.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages lists every language the service can detect and
// respond in.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageArabic, LanguageFrench}
}

// Valid reports whether l is one of the supported codes.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageArabic, LanguageFrench:
		return true
	}
	return false
}
