package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyCategories(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"Hamstring Stretch", CategoryFlexibility},
		{"Deep Breathing and Relaxation", CategoryFlexibility},
		{"Arm Circles", CategoryWarmup},
		{"Leg Swings", CategoryWarmup},
		{"Treadmill Intervals", CategoryCardio},
		{"Light Jogging", CategoryCardio},
		{"Dumbbell Bench Press", CategoryStrength},
		{"Goblet Squat", CategoryStrength},
		{"Mystery Movement", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.name), "name=%q", tc.name)
	}
}

// Precedence is fixed: earlier rules win even when a later rule's keyword
// is also present.
func TestClassifyPrecedence(t *testing.T) {
	require.Equal(t, CategoryFlexibility, Classify("Standing Stretch Press"))
	require.Equal(t, CategoryWarmup, Classify("Dynamic Squat Warm Up"))
	require.Equal(t, CategoryCardio, Classify("Treadmill Press Walk"))
}
