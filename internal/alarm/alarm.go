// Package alarm dispatches balance and price alarms raised elsewhere
// in the feeder, by email and by pushing a gauge to a Prometheus
// pushgateway.
package alarm

import (
	"fmt"
	"sync/atomic"

	"tinyfeed/internal/bus"
)

// baseSUIUnit converts the chain's smallest balance unit into whole
// coins for the human-readable alarm body.
const baseSUIUnit = 1_000_000_000

var nextMessageID uint64 = 1

// NewBalanceAlarm builds the alarm raised when the submitting
// account's gas balance drops below the configured floor, expressing
// both values in whole coins.
func NewBalanceAlarm(balance, threshold uint64) bus.Alarm {
	return bus.Alarm{
		MessageID: claimMessageID(),
		Kind:      bus.AlarmBalance,
		Subject:   "Balance Alarm",
		Body:      balanceBody(balance, threshold),
	}
}

// NewPriceAlarm builds the alarm raised when a tick's USDT anchor
// resolution fails; other assets that fail to resolve are only logged.
func NewPriceAlarm(description string) bus.Alarm {
	return bus.Alarm{
		MessageID: claimMessageID(),
		Kind:      bus.AlarmPrice,
		Subject:   "Price Alarm",
		Body:      description,
	}
}

func claimMessageID() uint64 {
	return atomic.AddUint64(&nextMessageID, 1) - 1
}

func balanceBody(balance, threshold uint64) string {
	bal := float64(balance) / baseSUIUnit
	thr := float64(threshold) / baseSUIUnit
	return fmt.Sprintf("Balance: %v, below %v", bal, thr)
}
