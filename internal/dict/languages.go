package dict

// DefaultLang is used when no data set is installed yet
const DefaultLang = "en"

// LanguageCodes lists the supported gloss languages in display order
var LanguageCodes = []string{"en", "de", "es", "fr", "pt", "ru", "zh"}

// LanguageNames maps each supported code to its display name.
// Total over LanguageCodes.
var LanguageNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
	"es": "Español",
	"fr": "Français",
	"pt": "Português",
	"ru": "Русский",
	"zh": "中文",
}
