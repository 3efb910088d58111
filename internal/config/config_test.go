package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Interval:   10,
		Coins:      []string{"BTC", "ETH", "USDT"},
		Decimals:   []uint64{8, 8, 6},
		Algorithms: []string{"average", "median"},
		Active:     0,
		UsdtActive: 1,
		Ratio:      0.66,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDecimalsLengthMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.Decimals = []uint64{8, 8}
	require.ErrorIs(t, cfg.Validate(), ErrDecimalsLengthMismatch)
}

func TestValidateRejectsMissingUSDT(t *testing.T) {
	cfg := validConfig()
	cfg.Coins = []string{"BTC", "ETH"}
	cfg.Decimals = []uint64{8, 8}
	require.ErrorIs(t, cfg.Validate(), ErrUSDTMissing)
}

func TestValidateRejectsEmptyAlgorithms(t *testing.T) {
	cfg := validConfig()
	cfg.Algorithms = nil
	require.ErrorIs(t, cfg.Validate(), ErrEmptyAlgorithms)
}

func TestUSDTIndex(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, 2, cfg.USDTIndex())
}

func TestActiveAndUSDTAlgorithmWrapModulo(t *testing.T) {
	cfg := validConfig()
	cfg.Active = 2
	cfg.UsdtActive = 3
	require.Equal(t, "average", cfg.ActiveAlgorithm())
	require.Equal(t, "median", cfg.USDTAlgorithm())
}

func TestDiffForDefaultsWhenNoOverride(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, 0.001, cfg.DiffFor("BTC"))
	cfg.Diffs = map[string]float64{"BTC": 0.02}
	require.Equal(t, 0.02, cfg.DiffFor("BTC"))
}

func TestEffectiveIntervalOverridesOnlyWhenLarger(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, uint64(10), cfg.EffectiveIntervalSeconds(5))
	require.Equal(t, uint64(20), cfg.EffectiveIntervalSeconds(20))
}
