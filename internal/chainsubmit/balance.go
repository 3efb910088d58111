package chainsubmit

import (
	"context"
	"time"

	"tinyfeed/internal/alarm"
	"tinyfeed/internal/bus"
	"tinyfeed/internal/logging"
)

// BalanceSampler periodically checks the submitting account's gas
// balance, pushes it to the metrics gateway on every sample, and
// raises a balance alarm when it drops below the configured floor.
type BalanceSampler struct {
	client   ChainClient
	rotator  *RPCRotator
	alarms   *bus.AlarmBus
	prom     *alarm.PromPusher
	address  string
	ip, env  string
	account  string
	floor    uint64
	interval time.Duration
	enabled  bool
}

func NewBalanceSampler(client ChainClient, rotator *RPCRotator, alarms *bus.AlarmBus, prom *alarm.PromPusher, address, ip, env, account string, floor uint64, intervalSeconds uint64, enabled bool) *BalanceSampler {
	return &BalanceSampler{
		client:   client,
		rotator:  rotator,
		alarms:   alarms,
		prom:     prom,
		address:  address,
		ip:       ip,
		env:      env,
		account:  account,
		floor:    floor,
		interval: time.Duration(intervalSeconds) * time.Second,
		enabled:  enabled,
	}
}

// Run polls the balance until ctx is cancelled. A zero interval or a
// disabled sampler returns immediately, matching the feeder's
// enable_balance_alarm switch.
func (b *BalanceSampler) Run(ctx context.Context) {
	if !b.enabled || b.interval == 0 {
		return
	}
	log := logging.Default().Component("balance")
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.check(ctx, log)
		}
	}
}

const baseSUIUnit = 1_000_000_000

func (b *BalanceSampler) check(ctx context.Context, log *logging.Logger) {
	rpcURL, err := b.rotator.Current()
	if err != nil {
		log.Error("no rpc available for balance check", "err", err)
		return
	}
	balance, err := b.client.GasBalance(ctx, rpcURL, b.address)
	if err != nil {
		log.Error("balance check failed", "rpc", rpcURL, "err", err)
		return
	}
	if balance == 0 {
		return
	}

	if b.prom != nil {
		b.prom.PushBalanceStatus(float64(balance)/baseSUIUnit, b.ip, b.env, b.account)
	}

	if balance < b.floor {
		log.Warn("gas balance below floor", "balance", balance, "floor", b.floor)
		if b.alarms != nil {
			b.alarms.Send(alarm.NewBalanceAlarm(balance, b.floor))
		}
	}
}
