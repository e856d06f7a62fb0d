package hattrick

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	cases := []struct {
		input  string
		expect Age
		fails  bool
	}{
		{input: "17.23", expect: Age{Years: 17, Days: 23}},
		{input: " 30.0 ", expect: Age{Years: 30}},
		{input: "17.111", expect: Age{Years: 17, Days: 111}},
		{input: "17.112", fails: true},
		{input: "17", fails: true},
		{input: "a.b", fails: true},
		{input: "-1.5", fails: true},
	}

	for _, test := range cases {
		age, err := ParseAge(test.input)
		if test.fails {
			require.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.expect, age)
	}
}

func TestAgeUnits(t *testing.T) {
	age := Age{Years: 17, Days: 56}
	require.Equal(t, 17*112+56, age.InDays())
	require.InDelta(t, 17.5, age.InYears(), 1e-9)
	require.Equal(t, "17.56", age.String())
}

func TestNationalStatus(t *testing.T) {
	_, err := NewNationalStatus(true, true)
	require.ErrorIs(t, err, ErrNationalStatusConflict)

	status, err := NewNationalStatus(false, true)
	require.NoError(t, err)
	require.Equal(t, "NTP:false NTPP:true", status.String())
}

func TestParseSource(t *testing.T) {
	for _, source := range Sources() {
		parsed, err := ParseSource(string(source))
		require.NoError(t, err)
		require.Equal(t, source, parsed)
	}
	_, err := ParseSource("lottery")
	require.ErrorContains(t, err, "youth, transfer, other")
}
