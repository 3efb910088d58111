// Package store implements the per-tick price matrix: a dense
// exchange x asset table of (price, volume) pairs, written once per
// adapter per tick and read after every adapter has joined.
package store

import "sync"

// ExchangeSize bounds the number of adapter slots the matrix reserves.
// It is an upper bound: the exchange adapter catalogue currently uses
// fewer slots, and unused rows stay zero.
const ExchangeSize = 20

// Cell is one (price, volume) sample. A zero Price means "no quote".
type Cell struct {
	Price  float64
	Volume float64
}

// Matrix is the C2 price store: ExchangeSize rows, one per adapter
// slot, each holding one cell per configured asset. A fresh Matrix is
// allocated at the start of every tick and discarded at its end; it
// has no persistence and no eviction policy.
type Matrix struct {
	mu    sync.Mutex
	cells [ExchangeSize][]Cell
}

// New allocates a zeroed matrix sized for assetCount columns.
func New(assetCount int) *Matrix {
	m := &Matrix{}
	for i := range m.cells {
		m.cells[i] = make([]Cell, assetCount)
	}
	return m
}

// WriteRow overwrites the entire row for slot with the adapter's
// aligned prices and volumes. Only the calling adapter's own slot is
// touched; no other row is read or written.
func (m *Matrix) WriteRow(slot int, prices, volumes []float64) {
	if slot < 0 || slot >= ExchangeSize {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.cells[slot]
	for i := range row {
		var p, v float64
		if i < len(prices) {
			p = prices[i]
		}
		if i < len(volumes) {
			v = volumes[i]
		}
		row[i] = Cell{Price: p, Volume: v}
	}
}

// SnapshotColumn returns the price and volume vectors for one asset
// index across all exchange slots, intended to be called only after
// every adapter for the tick has finished writing.
func (m *Matrix) SnapshotColumn(assetIdx int) (prices, volumes [ExchangeSize]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, row := range m.cells {
		if assetIdx < 0 || assetIdx >= len(row) {
			continue
		}
		prices[slot] = row[assetIdx].Price
		volumes[slot] = row[assetIdx].Volume
	}
	return prices, volumes
}

// Reset zeroes every cell in place, for reuse across ticks without
// reallocating the backing slices.
func (m *Matrix) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot := range m.cells {
		row := m.cells[slot]
		for i := range row {
			row[i] = Cell{}
		}
	}
}
