package localized

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewTextRejectsUnknownLanguage(t *testing.T) {
	_, err := NewText(map[string]string{"hu": "Összesen:", "de": "Gesamt:"})
	var unsupported *UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "de", unsupported.Code)
	require.Equal(t, []string{"en", "hu"}, unsupported.Supported)
}

func TestResolve(t *testing.T) {
	dict := Dictionary{
		"total":   MustText(map[string]string{"hu": "Összesen:", "en": "Total:"}),
		"nt":      MustText(map[string]string{"hu": "válogatott csapatának is tagja!"}),
		"nothing": MustText(map[string]string{}),
	}

	cases := []struct {
		field     string
		lang      Language
		expect    string
		missing   bool
		available []Language
	}{
		{field: "total", lang: Hungarian, expect: "Összesen:"},
		{field: "total", lang: English, expect: "Total:"},
		{field: "nt", lang: Hungarian, expect: "válogatott csapatának is tagja!"},
		{field: "nt", lang: English, available: []Language{Hungarian}},
		{field: "nothing", lang: English, available: nil},
		{field: "unknown", lang: English, missing: true},
	}

	for _, test := range cases {
		pattern, err := dict.Resolve(test.field, test.lang)
		switch {
		case test.missing:
			var missing *MissingTranslationError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, test.field, missing.Field)
		case test.expect == "":
			var noDef *NoDefinitionError
			require.ErrorAs(t, err, &noDef)
			if diff := cmp.Diff(test.available, noDef.Available); diff != "" {
				t.Fatalf("available languages of %s (-want +got):\n%s", test.field, diff)
			}
		default:
			require.NoError(t, err)
			require.Equal(t, test.expect, pattern)
		}
	}
}

func TestNoDefinitionMessageListsAvailableLanguages(t *testing.T) {
	dict := Dictionary{"age": MustText(map[string]string{"hu": `(?P<years>\d+) éves`})}
	_, err := dict.Resolve("age", English)
	require.EqualError(t, err, "'age' has no definition in english, available definitions: [hungarian]")
}

func TestDetectLanguage(t *testing.T) {
	lang, err := DetectLanguage(`<html xmlns="http://www.w3.org/1999/xhtml" lang="hu">`)
	require.NoError(t, err)
	require.Equal(t, Hungarian, lang)

	lang, err = DetectLanguage(`<html lang="en"><body lang="hu">`)
	require.NoError(t, err)
	require.Equal(t, English, lang)

	_, err = DetectLanguage(`<html>`)
	require.True(t, errors.Is(err, ErrNoLanguageMarker))

	_, err = DetectLanguage(`<html lang="sv">`)
	var unsupported *UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "sv", unsupported.Code)
	require.Contains(t, err.Error(), "'en hu'")
}

func TestLanguageCode(t *testing.T) {
	for _, lang := range Languages() {
		parsed, err := ParseLanguage(lang.Code())
		require.NoError(t, err)
		require.Equal(t, lang, parsed)
	}
}
