// Command tinyfeed runs the price feeder: fetch from every configured
// exchange, aggregate, and submit to the chain on a fixed interval,
// mailing and pushing alarms along the way.
package main

import (
	"bufio"
	"crypto/ed25519"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"tinyfeed/internal/alarm"
	"tinyfeed/internal/bus"
	"tinyfeed/internal/chainsubmit"
	"tinyfeed/internal/config"
	"tinyfeed/internal/exchange"
	"tinyfeed/internal/feed"
	"tinyfeed/internal/logging"
	"tinyfeed/internal/walletkey"
)

func main() {
	interval := flag.Uint64("interval", 10, "tick interval in seconds; overrides the config value only if larger")
	keyFlag := flag.String("key", "", "base64 private key")
	mnemonicFlag := flag.String("mnemonic", "", "BIP-39 mnemonic")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	exeDir, err := config.ExeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "resolve executable dir:", err)
		os.Exit(1)
	}
	level := log.InfoLevel
	if cfg.LogCfg {
		level = log.DebugLevel
	}
	logging.SetDefault(logging.New(exeDir, level))
	logger := logging.Default().Component("main")

	if cfg.Single {
		lock, ok, err := config.AcquireSingleInstance()
		if err != nil {
			logger.Error("acquire single-instance lock", "err", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "program already running...")
			os.Exit(0)
		}
		defer lock.Unlock()
	}

	creds := resolveCredentials(cfg, *keyFlag, *mnemonicFlag)
	if creds.Key == "" && creds.Mnemonic == "" {
		fmt.Fprintln(os.Stderr, "key or mnemonic missing")
		os.Exit(0)
	}
	signer, err := walletkey.Derive(creds)
	if err != nil {
		fmt.Fprintln(os.Stderr, "derive signing key:", err)
		os.Exit(0)
	}
	logger.Info("signing key derived", "public_key_len", len(signer.Public().(ed25519.PublicKey)))

	if cfg.Daemon {
		if err := config.Daemonize(); err != nil {
			logger.Error("daemonize", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("tinyd started")
	effectiveInterval := cfg.EffectiveIntervalSeconds(*interval)
	logger.Warn("startup parameters", "interval", effectiveInterval, "coins", cfg.Coins, "imitations", cfg.Imitations)

	ctx, cancel := config.InstallSignalHandler()
	defer cancel()

	alarms := bus.NewAlarmBus()
	prices := bus.NewPriceBus()

	mailer := alarm.NewMailer(cfg)
	dispatcher := alarm.NewDispatcher(alarms, mailer)
	go dispatcher.Run()

	rotator := chainsubmit.NewRPCRotator(cfg.RPCs)
	var promPusher *alarm.PromPusher
	if cfg.URL != "" {
		promPusher = alarm.NewPromPusher(cfg)
	}

	account := cfg.Account
	if cfg.UseMulti {
		account = cfg.MultiAddress
	}
	// No published Go SDK covers this chain's JSON-RPC surface; wiring a
	// real ChainClient is left to the deployment environment.
	client := newChainClient(cfg)
	if client == nil {
		logger.Error("no chain client wired, submission and balance checks disabled")
	} else {
		submitter := chainsubmit.New(cfg, client, rotator, prices, alarms, account, effectiveInterval)
		go submitter.Run(ctx)

		sampler := chainsubmit.NewBalanceSampler(client, rotator, alarms, promPusher, account, cfg.IP, cfg.Env, cfg.Account, cfg.Balance, cfg.CheckBalanceInterval, cfg.EnableBalanceAlarm)
		go sampler.Run(ctx)
	}

	orch := feed.New(cfg, exchange.Default(), prices, alarms, effectiveInterval)
	orch.Run(ctx)

	logger.Warn("got it! exiting...")
}

// resolveCredentials layers interactive, environment and CLI-flag
// credentials, in that priority order, matching the feeder's startup
// prompt behaviour.
func resolveCredentials(cfg *config.Config, keyFlag, mnemonicFlag string) walletkey.Credentials {
	var interactive walletkey.Credentials
	if cfg.Interactive {
		fmt.Println("Please enter a private key or mnemonic:")
		interactive = walletkey.PromptInteractive(bufio.NewReader(os.Stdin))
	}

	env := walletkey.Credentials{
		Key:      os.Getenv("KEY"),
		Mnemonic: os.Getenv("MNEMONIC"),
	}

	flagCreds := walletkey.Credentials{
		Key:      keyFlag,
		Mnemonic: mnemonicFlag,
	}

	return walletkey.Resolve(interactive, env, flagCreds)
}

// newChainClient is the seam a deployment plugs its chainsubmit.ChainClient
// implementation into; none ships here since no published Go SDK talks to
// this chain's JSON-RPC surface.
func newChainClient(cfg *config.Config) chainsubmit.ChainClient {
	return nil
}
