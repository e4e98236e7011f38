package video

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/exerciseresolver/internal/domain"
)

func TestScoreRejectsOverDurationCeiling(t *testing.T) {
	candidate := Candidate{
		Title:           "Perfect Squat Form Tutorial",
		DurationSeconds: 310,
		ViewCount:       1_000_000,
		LikeCount:       50_000,
	}
	require.Equal(t, -1, Score(candidate, domain.CategoryStrength))
}

func TestScoreDurationBands(t *testing.T) {
	cases := []struct {
		seconds int
		want    int
	}{
		{300, 30},
		{60, 30},
		{59, 20},
		{30, 20},
		{29, 10},
		{0, 10},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Score(Candidate{DurationSeconds: tc.seconds}, domain.CategoryGeneral), "seconds=%d", tc.seconds)
	}
}

func TestScoreWarmupTitleKeywords(t *testing.T) {
	candidate := Candidate{
		Title:           "Arm Circles Form Tutorial",
		DurationSeconds: 90,
	}
	// 30 for duration, 10 for "form", 10 for "tutorial".
	require.Equal(t, 50, Score(candidate, domain.CategoryWarmup))
}

func TestScorePopularityBonuses(t *testing.T) {
	base := Candidate{DurationSeconds: 90}
	require.Equal(t, 30, Score(base, domain.CategoryGeneral))

	popular := base
	popular.ViewCount = 10_001
	require.Equal(t, 40, Score(popular, domain.CategoryGeneral))

	popular.LikeCount = 101
	require.Equal(t, 45, Score(popular, domain.CategoryGeneral))
}

func TestScoreCategoryKeywordTables(t *testing.T) {
	candidate := Candidate{
		Title:           "Gentle Yoga Stretch for Beginners",
		DurationSeconds: 120,
	}
	// 30 duration + 25 stretch + 20 yoga + 10 beginner + 10 gentle.
	require.Equal(t, 95, Score(candidate, domain.CategoryFlexibility))

	// Same title scored as strength only picks up the "beginner" keyword.
	require.Equal(t, 40, Score(candidate, domain.CategoryStrength))
}
