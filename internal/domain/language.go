package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language wraps a validated BCP-47 language tag. The English display name
// is what prompt templates substitute for the target-language placeholder,
// so it must be stable for a given tag.
type Language struct {
	tag language.Tag
}

// ParseLanguage parses a BCP-47 tag such as "es-MX" or "ja".
// Returns ErrInvalidLanguage if the tag cannot be parsed.
func ParseLanguage(bcp47 string) (Language, error) {
	if bcp47 == "" {
		return Language{}, fmt.Errorf("%w: empty tag", ErrInvalidLanguage)
	}
	tag, err := language.Parse(bcp47)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, bcp47, err)
	}
	return Language{tag: tag}, nil
}

// MustParseLanguage is ParseLanguage for static tags; panics on error.
func MustParseLanguage(bcp47 string) Language {
	lang, err := ParseLanguage(bcp47)
	if err != nil {
		// ALLOW-PANIC: reserved for compile-time-constant tags
		panic(err)
	}
	return lang
}

// BCP47 returns the canonical form of the tag, e.g. "es-MX".
func (l Language) BCP47() string {
	return l.tag.String()
}

// Name returns the English display name of the language, e.g. "Spanish"
// for "es-MX". This is the value substituted into instruction templates.
func (l Language) Name() string {
	return display.English.Languages().Name(l.tag)
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return fmt.Sprintf("%s (%s)", l.Name(), l.BCP47())
}
