// Package fixedpoint converts USD-denominated float prices into the
// integer scale an on-chain oracle table expects.
package fixedpoint

import "math"

// Scale truncates usd * 10^decimals into a u64, matching the precision
// the destination asset's price table was configured for. Negative or
// non-finite input scales to zero rather than panicking, since a bad
// upstream price should drop the asset, not crash the feeder.
func Scale(usd float64, decimals uint64) uint64 {
	if math.IsNaN(usd) || math.IsInf(usd, 0) || usd <= 0 {
		return 0
	}
	factor := math.Pow(10, float64(decimals))
	scaled := math.Floor(usd * factor)
	if scaled < 0 || math.IsInf(scaled, 0) {
		return 0
	}
	return uint64(scaled)
}
