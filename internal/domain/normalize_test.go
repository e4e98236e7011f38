package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesModifiersAndSynonyms(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  Light Jogging  ", "jogging"},
		{"Running on Treadmill", "jogging treadmill"},
		{"Dynamic Stretching", "stretch"},
		{"Deep Breath Work", "breathing work"},
		{"Arm Circle", "arm circles"},
		{"Brisk   Walk", "walk"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Normalize(tc.raw), "raw=%q", tc.raw)
	}
}

// Phrase synonyms collapse whole words only; a word that merely ends in a
// phrase prefix must survive intact.
func TestNormalizePhraseSynonymsRespectWordBoundaries(t *testing.T) {
	require.Equal(t, "marathon treadmill", Normalize("Marathon Treadmill"))
	require.Equal(t, "marathon treadmill", Normalize("Marathon on Treadmill"))
}

func TestNormalizeEquatesSynonymSpellings(t *testing.T) {
	require.Equal(t, Normalize("Light Jogging"), Normalize("jogging"))
	require.Equal(t, Normalize("Running on Treadmill"), Normalize("Jogging on Treadmill"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Light Jogging",
		"Running on Treadmill",
		"Deep Breathing and Relaxation",
		"Dumbbell Bench Press",
		"Arm Circles",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		require.Equal(t, once, Normalize(once), "raw=%q", raw)
	}
}
