// Package chainsubmit packs resolved prices into chain call
// parameters and submits them through an RPC-rotating ChainClient,
// either single-signer or multisig.
package chainsubmit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tinyfeed/internal/bus"
	"tinyfeed/internal/config"
	"tinyfeed/internal/logging"
)

var (
	ErrLengthMismatch = errors.New("chainsubmit: indices and prices have different lengths")
	ErrStaleEnvelope  = errors.New("chainsubmit: envelope older than the tick interval, dropped")
	ErrNoRPCs         = errors.New("chainsubmit: no rpc endpoints configured")
)

// Params is the argument set a single on-chain price-update call
// carries: the object ids the Move entry function expects, plus the
// per-asset indices, scaled prices and a shared submission timestamp.
type Params struct {
	OracleCap   string
	PriceOracle string
	ClockID     string
	Indices     []uint8
	Prices      []uint64
	Timestamps  []uint64
}

// clockObjectID is the chain's well-known system clock object,
// documented as a fixed id rather than something callers supply.
const clockObjectID = "0x6"

// PackParams builds the call parameters for one tick, validating that
// indices and prices line up and stamping every entry with the same
// submission timestamp.
func PackParams(oracleCap, priceOracle string, indices []uint8, prices []uint64, nowMs uint64) (Params, error) {
	if len(indices) != len(prices) {
		return Params{}, fmt.Errorf("%w: indices=%d prices=%d", ErrLengthMismatch, len(indices), len(prices))
	}
	timestamps := make([]uint64, len(indices))
	for i := range timestamps {
		timestamps[i] = nowMs
	}
	return Params{
		OracleCap:   oracleCap,
		PriceOracle: priceOracle,
		ClockID:     clockObjectID,
		Indices:     indices,
		Prices:      prices,
		Timestamps:  timestamps,
	}, nil
}

// MultisigConfig carries the signer group a MultiCall should use.
type MultisigConfig struct {
	PublicKeys []string
	Weights    []uint8
	Threshold  uint16
}

// ChainClient is the external collaborator that actually talks to the
// chain. Production wiring is out of scope here: no published Go SDK
// covers this chain's JSON-RPC surface, so callers supply their own
// implementation (the test suite uses an in-repo fake).
type ChainClient interface {
	Call(ctx context.Context, rpcURL string, params Params, gasBudget uint64, gasObject string) (digest string, err error)
	MultiCall(ctx context.Context, rpcURL string, params Params, gasBudget uint64, gasObject string, multisig MultisigConfig) (digest string, err error)
	GasBalance(ctx context.Context, rpcURL, address string) (uint64, error)
}

// RPCRotator tracks the endpoint in use among the configured ones.
// Successful calls stay on the current endpoint; it advances only for
// the one-retry-on-a-different-endpoint failure policy.
type RPCRotator struct {
	mu   sync.Mutex
	urls []string
	next int
}

func NewRPCRotator(urls []string) *RPCRotator {
	return &RPCRotator{urls: urls}
}

// Current returns the endpoint presently in use without advancing the
// rotation, so a run of successful calls keeps a sticky endpoint
// instead of rotating on every submission.
func (r *RPCRotator) Current() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.urls) == 0 {
		return "", ErrNoRPCs
	}
	return r.urls[r.next%len(r.urls)], nil
}

// Next returns the next endpoint in rotation order.
func (r *RPCRotator) Next() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.urls) == 0 {
		return "", ErrNoRPCs
	}
	url := r.urls[r.next%len(r.urls)]
	r.next++
	return url, nil
}

// Rotate advances past the endpoint that just failed and returns the
// new current endpoint, for the one-retry-on-a-different-endpoint
// failure policy; the rotation sticks at the new endpoint for every
// subsequent call until the next failure.
func (r *RPCRotator) Rotate() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.urls) == 0 {
		return "", ErrNoRPCs
	}
	r.next++
	return r.urls[r.next%len(r.urls)], nil
}

// Submitter consumes price envelopes and drives them on-chain.
type Submitter struct {
	cfg      *config.Config
	client   ChainClient
	rotator  *RPCRotator
	prices   *bus.PriceBus
	alarms   *bus.AlarmBus
	account  string
	interval time.Duration
}

func New(cfg *config.Config, client ChainClient, rotator *RPCRotator, prices *bus.PriceBus, alarms *bus.AlarmBus, account string, intervalSeconds uint64) *Submitter {
	return &Submitter{
		cfg:      cfg,
		client:   client,
		rotator:  rotator,
		prices:   prices,
		alarms:   alarms,
		account:  account,
		interval: time.Duration(intervalSeconds) * time.Second,
	}
}

// Run drains published envelopes until ctx is cancelled, submitting
// each one that passes the freshness guard.
func (s *Submitter) Run(ctx context.Context) {
	log := logging.Default().Component("chainsubmit")
	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal observed, exiting submit loop")
			return
		case env, ok := <-s.prices.Recv():
			if !ok {
				return
			}
			if err := s.Submit(ctx, env); err != nil {
				log.Error("submission failed", "err", err)
			}
		}
	}
}

// Submit packs and submits a single envelope, applying the freshness
// guard and the one-rotate-one-retry failure policy.
func (s *Submitter) Submit(ctx context.Context, env bus.Envelope) error {
	log := logging.Default().Component("chainsubmit")

	if s.isStale(env) {
		return ErrStaleEnvelope
	}

	params, err := PackParams(s.cfg.OracleCap, s.cfg.PriceOracle, env.Indices, env.Prices, nowMs())
	if err != nil {
		return err
	}

	rpcURL, err := s.rotator.Current()
	if err != nil {
		return err
	}

	digest, err := s.call(ctx, rpcURL, params)
	if err == nil {
		log.Info("submitted price update", "digest", digest, "rpc", rpcURL, "account", s.account)
		return nil
	}

	log.Warn("submission failed, rotating rpc for one retry", "rpc", rpcURL, "err", err)
	retryURL, rotateErr := s.rotator.Rotate()
	if rotateErr != nil {
		return err
	}
	digest, err = s.call(ctx, retryURL, params)
	if err != nil {
		if s.cfg.EnablePriceAlarm && s.alarms != nil {
			s.alarms.Send(bus.Alarm{
				Kind:    bus.AlarmPrice,
				Subject: "tinyfeed: on-chain submission failed twice",
				Body:    err.Error(),
			})
		}
		return fmt.Errorf("chainsubmit: both submission attempts failed: %w", err)
	}
	log.Info("submitted price update on retry", "digest", digest, "rpc", retryURL)
	return nil
}

func (s *Submitter) call(ctx context.Context, rpcURL string, params Params) (string, error) {
	if s.cfg.UseMulti {
		multisig := MultisigConfig{PublicKeys: s.cfg.PublicKeys, Weights: s.cfg.Weights, Threshold: s.cfg.Threshold}
		return s.client.MultiCall(ctx, rpcURL, params, s.cfg.GasBudget, s.cfg.Gas, multisig)
	}
	return s.client.Call(ctx, rpcURL, params, s.cfg.GasBudget, s.cfg.Gas)
}

// isStale is the core's freshness guard: an envelope older than one
// tick interval is dropped rather than submitted, per spec.
func (s *Submitter) isStale(env bus.Envelope) bool {
	if s.interval == 0 {
		return false
	}
	age := time.Duration(nowMs()-env.ProducedAtMs) * time.Millisecond
	return age > s.interval
}

// nowMs is a seam so tests can't be flaky on wall-clock timing; it is
// overridden in tests but otherwise just the current time.
var nowMs = func() uint64 {
	return uint64(time.Now().UnixMilli())
}
