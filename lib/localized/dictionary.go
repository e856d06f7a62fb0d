package localized

import (
	"fmt"
	"strings"
)

// Text holds one pattern per language. A language may be left out on
// purpose when no translation exists yet.
type Text struct {
	translations map[Language]string
}

// NewText builds a Text from page language codes, unknown codes are
// rejected right away.
func NewText(translations map[string]string) (Text, error) {
	t := Text{translations: make(map[Language]string, len(translations))}
	for code, pattern := range translations {
		lang, err := ParseLanguage(code)
		if err != nil {
			return Text{}, err
		}
		if pattern == "" {
			continue
		}
		t.translations[lang] = pattern
	}
	return t, nil
}

// MustText is NewText for package level dictionaries.
func MustText(translations map[string]string) Text {
	t, err := NewText(translations)
	if err != nil {
		panic(err)
	}
	return t
}

// Available returns the languages that have a definition, in stable order.
func (t Text) Available() []Language {
	var out []Language
	for _, lang := range Languages() {
		if _, ok := t.translations[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

func (t Text) In(lang Language) (string, bool) {
	pattern, ok := t.translations[lang]
	return pattern, ok
}

type MissingTranslationError struct {
	Field string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("no translations at all for '%s'", e.Field)
}

type NoDefinitionError struct {
	Field     string
	Language  Language
	Available []Language
}

func (e *NoDefinitionError) Error() string {
	names := make([]string, len(e.Available))
	for i, lang := range e.Available {
		names[i] = lang.String()
	}
	return fmt.Sprintf(
		"'%s' has no definition in %s, available definitions: [%s]",
		e.Field, e.Language, strings.Join(names, ", "),
	)
}

// Dictionary maps a semantic field name to its localized patterns.
type Dictionary map[string]Text

func (d Dictionary) Resolve(field string, lang Language) (string, error) {
	text, ok := d[field]
	if !ok {
		return "", &MissingTranslationError{Field: field}
	}
	pattern, ok := text.In(lang)
	if !ok {
		return "", &NoDefinitionError{
			Field:     field,
			Language:  lang,
			Available: text.Available(),
		}
	}
	return pattern, nil
}
