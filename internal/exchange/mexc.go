package exchange

import (
	"context"
	"net/http"
	"strconv"

	json "github.com/segmentio/encoding/json"
)

var mexcAllTickerURL = "https://api.mexc.com/api/v3/ticker/24hr"

type mexcTicker struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	Volume    string `json:"volume"`
}

// MEXC fetches the full 24h ticker book; it ignores maxStalenessMs
// since the response carries no timestamp (matches the rest of the
// general-tier adapters without per-row timestamps).
type MEXC struct {
	slot   int
	client *http.Client
}

func NewMEXC(slot int) *MEXC {
	return &MEXC{slot: slot, client: newHTTPClient()}
}

func (m *MEXC) Name() string { return "mexc" }
func (m *MEXC) Slot() int    { return m.slot }

func (m *MEXC) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(m.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "", false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mexcAllTickerURL, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := m.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var tickers []mexcTicker
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	for _, row := range tickers {
		i, ok := idx[row.Symbol]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(row.LastPrice, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row.Volume, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return prices, volumes
}
