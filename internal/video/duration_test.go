package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"PT4M30S", 270},
		{"4M30S", 270},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT10M", 600},
		{"pt4m30s", 270},
		{" PT90S ", 90},
		{"", 0},
		{"banana", 0},
		{"PT4X30S", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ParseDuration(tc.token), "token=%q", tc.token)
	}
}
