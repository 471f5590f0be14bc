package types

import "golang.org/x/text/language"

// Language selects which of the two name/label fields the display layer
// shows. Only English and Chinese are supported.
type Language string

const (
	LangEn Language = "en"
	LangZh Language = "zh"
)

// IsValid returns true if the language is one of the two supported values.
func (l Language) IsValid() bool {
	return l == LangEn || l == LangZh
}

// Other returns the opposite language, used by the UI language toggle.
func (l Language) Other() Language {
	if l == LangZh {
		return LangEn
	}
	return LangZh
}

var supportedTags = []language.Tag{
	language.English, // en, the fallback
	language.Chinese, // zh
}

var languageMatcher = language.NewMatcher(supportedTags)

// ParseLanguage resolves an arbitrary BCP-47 tag ("zh-CN", "en-US", ...)
// to one of the two supported languages. Unparseable or unrelated tags
// fall back to English.
func ParseLanguage(tag string) Language {
	parsed, err := language.Parse(tag)
	if err != nil {
		return LangEn
	}
	_, index, _ := languageMatcher.Match(parsed)
	if index == 1 {
		return LangZh
	}
	return LangEn
}
