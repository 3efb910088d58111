package alarm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tinyfeed/internal/bus"
)

func TestNewBalanceAlarmFormatsWholeCoins(t *testing.T) {
	a := NewBalanceAlarm(5*baseSUIUnit, 10*baseSUIUnit)
	require.Equal(t, bus.AlarmBalance, a.Kind)
	require.Equal(t, "Balance Alarm", a.Subject)
	require.True(t, strings.Contains(a.Body, "5"))
	require.True(t, strings.Contains(a.Body, "10"))
}

func TestNewPriceAlarmCarriesDescription(t *testing.T) {
	a := NewPriceAlarm("USDT anchor resolution failed")
	require.Equal(t, bus.AlarmPrice, a.Kind)
	require.Equal(t, "Price Alarm", a.Subject)
	require.Equal(t, "USDT anchor resolution failed", a.Body)
}

func TestMessageIDsAreMonotonic(t *testing.T) {
	a := NewPriceAlarm("one")
	b := NewBalanceAlarm(1, 2)
	require.Less(t, a.MessageID, b.MessageID)
}
