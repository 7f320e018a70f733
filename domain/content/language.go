package content

import (
	"fmt"
	"strings"
)

// Language identifies one of the two site languages.
type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
)

// Languages returns the supported languages in a fixed order.
func Languages() []Language {
	return []Language{LanguageDE, LanguageEN}
}

// ParseLanguage validates a language code coming from a request payload.
// Case and surrounding whitespace are ignored.
func ParseLanguage(s string) (Language, error) {
	switch lang := Language(strings.ToLower(strings.TrimSpace(s))); lang {
	case LanguageDE, LanguageEN:
		return lang, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Other returns the opposite language of a pair.
func (l Language) Other() Language {
	if l == LanguageDE {
		return LanguageEN
	}
	return LanguageDE
}

func (l Language) String() string {
	return string(l)
}
