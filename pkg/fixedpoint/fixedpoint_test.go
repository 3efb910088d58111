package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	cases := []struct {
		name     string
		usd      float64
		decimals uint64
		want     uint64
	}{
		{"whole dollar six decimals", 1.0, 6, 1_000_000},
		{"fractional price eight decimals", 0.00001234, 8, 1234},
		{"truncates rather than rounds", 1.999999995, 6, 1_999_999},
		{"zero decimals", 42.0, 0, 42},
		{"zero price", 0, 6, 0},
		{"negative price floors to zero", -5, 6, 0},
		{"nan floors to zero", math.NaN(), 6, 0},
		{"inf floors to zero", math.Inf(1), 6, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Scale(c.usd, c.decimals))
		})
	}
}
