// Package feed implements the C4 tick orchestrator: fan-out to every
// exchange adapter, join, per-asset aggregation, USDT anchor
// normalisation, fixed-point scaling, and envelope publication.
package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tinyfeed/internal/aggregate"
	"tinyfeed/internal/alarm"
	"tinyfeed/internal/bus"
	"tinyfeed/internal/config"
	"tinyfeed/internal/exchange"
	"tinyfeed/internal/logging"
	"tinyfeed/internal/store"
	"tinyfeed/pkg/fixedpoint"
)

// Orchestrator runs the periodic fetch-aggregate-publish cycle.
type Orchestrator struct {
	cfg      *config.Config
	adapters []exchange.Adapter
	prices   *bus.PriceBus
	alarms   *bus.AlarmBus
	interval time.Duration

	tickCount uint64
}

// New builds an orchestrator for the given effective tick interval
// (already resolved against the CLI override).
func New(cfg *config.Config, adapters []exchange.Adapter, prices *bus.PriceBus, alarms *bus.AlarmBus, intervalSeconds uint64) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		adapters: adapters,
		prices:   prices,
		alarms:   alarms,
		interval: time.Duration(intervalSeconds) * time.Second,
	}
}

// Run loops until ctx is cancelled, honouring the "ticks never
// overlap" rule: the next tick waits for the interval to elapse after
// the previous tick's publish step, not on a fixed wall-clock grid.
func (o *Orchestrator) Run(ctx context.Context) {
	log := logging.Default().Component("feed")

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal observed, exiting tick loop")
			return
		case <-time.After(o.interval):
			o.tick(ctx)
		}
	}
}

// tick runs exactly one fetch-aggregate-publish cycle.
func (o *Orchestrator) tick(ctx context.Context) {
	log := logging.Default().Component("feed")
	cfg := o.cfg
	matrix := store.New(len(cfg.Coins))

	var wg sync.WaitGroup
	for _, adapter := range o.adapters {
		wg.Add(1)
		go func(a exchange.Adapter) {
			defer wg.Done()
			prices, volumes := a.Fetch(ctx, cfg.Coins, "USDT", cfg.InvalidTime)
			matrix.WriteRow(a.Slot(), prices, volumes)
		}(adapter)
	}
	wg.Wait()

	usdtIdx := cfg.USDTIndex()
	usdtPrices, usdtVolumes := matrix.SnapshotColumn(usdtIdx)
	usdtPrice, err := o.resolve("USDT", usdtPrices[:], usdtVolumes[:], cfg.USDTAlgorithm())
	if err != nil {
		log.Error("usdt anchor resolution failed, aborting tick", "err", err)
		if cfg.EnablePriceAlarm && o.alarms != nil {
			o.alarms.Send(alarm.NewPriceAlarm("Failed to obtain currency price! usdt: " + err.Error()))
		}
		return
	}

	indices := make([]uint8, 0, len(cfg.Coins))
	scaledPrices := make([]uint64, 0, len(cfg.Coins))

	for i, symbol := range cfg.Coins {
		if i == usdtIdx {
			indices = append(indices, uint8(i))
			scaledPrices = append(scaledPrices, fixedpoint.Scale(usdtPrice, cfg.Decimals[i]))
			continue
		}

		colPrices, colVolumes := matrix.SnapshotColumn(i)
		price, err := o.resolve(symbol, colPrices[:], colVolumes[:], cfg.ActiveAlgorithm())
		if err != nil {
			log.Warn("skipping asset for this tick", "symbol", symbol, "err", err)
			continue
		}

		usdAnchored := price * usdtPrice
		indices = append(indices, uint8(i))
		scaledPrices = append(scaledPrices, fixedpoint.Scale(usdAnchored, cfg.Decimals[i]))
	}

	o.prices.Publish(bus.Envelope{
		Indices:      indices,
		Prices:       scaledPrices,
		ProducedAtMs: uint64(time.Now().UnixMilli()),
	})

	atomic.AddUint64(&o.tickCount, 1)
}

// resolve implements the per-asset resolution rule: an imitation
// bypasses the aggregator entirely, otherwise the configured algorithm
// reduces the column.
func (o *Orchestrator) resolve(symbol string, prices, volumes []float64, algo string) (float64, error) {
	if pinned, ok := o.cfg.Imitations[symbol]; ok {
		return pinned, nil
	}
	params := aggregate.Params{
		DiffPercent:   o.cfg.DiffFor(symbol),
		ExpectedRatio: o.cfg.Ratio,
	}
	return aggregate.Resolve(aggregate.Algorithm(algo), prices, volumes, params)
}

// TickCount reports how many ticks have completed, for tests and
// diagnostics.
func (o *Orchestrator) TickCount() uint64 {
	return atomic.LoadUint64(&o.tickCount)
}
