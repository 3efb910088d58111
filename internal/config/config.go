// Package config loads and validates the on-disk feeder configuration
// and the small set of ambient runtime concerns (daemonizing, the
// single-instance lock, signal handling) that sit around it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config mirrors the configuration document read from tiny.yaml next
// to the executable. Field names match the keys of that document.
type Config struct {
	Interval             uint64             `yaml:"interval"`
	Coins                []string           `yaml:"coins"`
	Decimals             []uint64           `yaml:"decimals"`
	Imitations           map[string]float64 `yaml:"imitations"`
	PackageID            string             `yaml:"package_id"`
	OracleCap            string             `yaml:"oracle_cap"`
	PriceOracle          string             `yaml:"price_oracle"`
	SMTP                 string             `yaml:"smtp"`
	Port                 uint16             `yaml:"port"`
	From                 string             `yaml:"from"`
	To                   string             `yaml:"to"`
	Username             string             `yaml:"username"`
	Password             string             `yaml:"password"`
	Algorithms           []string           `yaml:"algorithms"`
	Active               uint8              `yaml:"active"`
	Diffs                map[string]float64 `yaml:"diffs"`
	Ratio                float64            `yaml:"ratio"`
	Balance              uint64             `yaml:"balance"`
	GasBudget            uint64             `yaml:"gas_budget"`
	EnableBalanceAlarm   bool               `yaml:"enable_balance_alarm"`
	EnablePriceAlarm     bool               `yaml:"enable_price_alarm"`
	Daemon               bool               `yaml:"daemon"`
	Single               bool               `yaml:"single"`
	LogCfg               bool               `yaml:"log_cfg"`
	InvalidTime          uint64             `yaml:"invalid_time"`
	CheckBalanceInterval uint64             `yaml:"check_balance_interval"`
	Job                  string             `yaml:"job"`
	URL                  string             `yaml:"url"`
	Instance             string             `yaml:"instance"`
	Desc                 string             `yaml:"desc"`
	PromUsername         string             `yaml:"prom_username"`
	PromPassword         string             `yaml:"prom_password"`
	IP                   string             `yaml:"ip"`
	Env                  string             `yaml:"env"`
	Account              string             `yaml:"account"`
	Interactive          bool               `yaml:"interactive"`
	UseMulti             bool               `yaml:"use_multi"`
	MultiAddress         string             `yaml:"multi_address"`
	PublicKeys           []string           `yaml:"publickeys"`
	Weights              []uint8            `yaml:"weights"`
	Threshold            uint16             `yaml:"threshold"`
	Gas                  string             `yaml:"gas"`
	UsdtActive           uint8              `yaml:"usdt_active"`
	RPCs                 []string           `yaml:"rpcs"`
}

const (
	configFileName = "tiny.yaml"
	lockFileName   = "tiny.lock"
)

var (
	ErrDecimalsLengthMismatch = errors.New("config: decimals length does not match coins length")
	ErrUSDTMissing            = errors.New("config: coins must contain USDT")
	ErrEmptyAlgorithms        = errors.New("config: algorithms must not be empty")
)

// ExeDir returns the directory containing the running executable,
// since every sibling file (config, log, lock) is sited there.
func ExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

// Path returns the absolute path to tiny.yaml next to the executable.
func Path() (string, error) {
	dir, err := ExeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LockPath returns the absolute path to the single-instance lock file.
func LockPath() (string, error) {
	dir, err := ExeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, lockFileName), nil
}

// Load reads and validates tiny.yaml, failing closed on the two
// documented Open Questions this spec closes at load time: a
// coins/decimals length mismatch, and an absent USDT entry.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the invariants the rest of the feeder depends on
// without re-checking at every call site.
func (c *Config) Validate() error {
	if len(c.Decimals) != len(c.Coins) {
		return fmt.Errorf("%w: coins=%d decimals=%d", ErrDecimalsLengthMismatch, len(c.Coins), len(c.Decimals))
	}
	if c.USDTIndex() < 0 {
		return ErrUSDTMissing
	}
	if len(c.Algorithms) == 0 {
		return ErrEmptyAlgorithms
	}
	return nil
}

// USDTIndex returns the position of "USDT" in Coins, or -1 if absent.
func (c *Config) USDTIndex() int {
	for i, coin := range c.Coins {
		if coin == "USDT" {
			return i
		}
	}
	return -1
}

// ActiveAlgorithm resolves the default algorithm name for non-USDT
// assets, wrapping Active modulo the algorithm pool length.
func (c *Config) ActiveAlgorithm() string {
	return c.Algorithms[int(c.Active)%len(c.Algorithms)]
}

// USDTAlgorithm resolves the algorithm name used for the USDT leg.
func (c *Config) USDTAlgorithm() string {
	return c.Algorithms[int(c.UsdtActive)%len(c.Algorithms)]
}

// DiffFor returns the per-symbol backwad diff_percent, defaulting to
// 0.001 (0.1%) when the symbol has no override.
func (c *Config) DiffFor(symbol string) float64 {
	if d, ok := c.Diffs[symbol]; ok {
		return d
	}
	return 0.001
}

// EffectiveIntervalSeconds returns the larger of the config interval
// and a CLI-supplied override, matching the documented "--interval
// overrides config only if larger" rule.
func (c *Config) EffectiveIntervalSeconds(cliInterval uint64) uint64 {
	if cliInterval > c.Interval {
		return cliInterval
	}
	return c.Interval
}
