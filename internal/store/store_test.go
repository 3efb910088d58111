package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteRowOnlyTouchesOwnSlot(t *testing.T) {
	m := New(3)
	m.WriteRow(0, []float64{10, 20, 30}, []float64{1, 1, 1})
	m.WriteRow(1, []float64{11, 21, 31}, []float64{2, 2, 2})

	p0, v0 := m.SnapshotColumn(0)
	require.Equal(t, 10.0, p0[0])
	require.Equal(t, 11.0, p0[1])
	require.Equal(t, 0.0, p0[2])
	require.Equal(t, 1.0, v0[0])
}

func TestSnapshotColumnOutOfRangeIsZero(t *testing.T) {
	m := New(2)
	m.WriteRow(0, []float64{1, 2}, []float64{1, 1})
	p, _ := m.SnapshotColumn(5)
	require.Equal(t, [ExchangeSize]float64{}, p)
}

func TestConcurrentRowWritesDoNotRace(t *testing.T) {
	m := New(4)
	var wg sync.WaitGroup
	for slot := 0; slot < ExchangeSize; slot++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			m.WriteRow(slot, []float64{float64(slot), float64(slot), float64(slot), float64(slot)}, []float64{1, 1, 1, 1})
		}(slot)
	}
	wg.Wait()

	prices, _ := m.SnapshotColumn(0)
	for slot := 0; slot < ExchangeSize; slot++ {
		require.Equal(t, float64(slot), prices[slot])
	}
}

func TestResetClearsAllCells(t *testing.T) {
	m := New(2)
	m.WriteRow(0, []float64{5, 6}, []float64{1, 1})
	m.Reset()
	prices, volumes := m.SnapshotColumn(0)
	require.Equal(t, [ExchangeSize]float64{}, prices)
	require.Equal(t, [ExchangeSize]float64{}, volumes)
}
