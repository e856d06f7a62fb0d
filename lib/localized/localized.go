// Package localized maps semantic field names to per-language text patterns.
package localized

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Language is one of the page languages the scrapers understand.
type Language int

const (
	Hungarian Language = iota
	English
)

var languageCodes = map[string]Language{
	"hu": Hungarian,
	"en": English,
}

// Languages returns every supported language in a stable order.
func Languages() []Language {
	return []Language{Hungarian, English}
}

// SupportedCodes returns the whitelist of page language codes.
func SupportedCodes() []string {
	codes := make([]string, 0, len(languageCodes))
	for code := range languageCodes {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// ParseLanguage maps a page language code to a Language.
func ParseLanguage(code string) (Language, error) {
	lang, ok := languageCodes[code]
	if !ok {
		return 0, &UnsupportedLanguageError{Code: code, Supported: SupportedCodes()}
	}
	return lang, nil
}

func (l Language) Code() string {
	for code, lang := range languageCodes {
		if lang == l {
			return code
		}
	}
	return ""
}

func (l Language) String() string {
	switch l {
	case Hungarian:
		return "hungarian"
	case English:
		return "english"
	}
	return fmt.Sprintf("language(%d)", int(l))
}

type UnsupportedLanguageError struct {
	Code      string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf(
		"unsupported page language '%s', the supported language codes are '%s'",
		e.Code, strings.Join(e.Supported, " "),
	)
}

var ErrNoLanguageMarker = errors.New("could not find the page language marker")

var languageMarker = regexp.MustCompile(`lang="(?P<code>[^"]+)"`)

// DetectLanguage finds the first lang="xx" marker of a page and maps it
// through the whitelist.
func DetectLanguage(body string) (Language, error) {
	groups := languageMarker.FindStringSubmatch(body)
	if len(groups) < 2 {
		return 0, ErrNoLanguageMarker
	}
	return ParseLanguage(groups[1])
}
