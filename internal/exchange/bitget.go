package exchange

import (
	"context"
	"net/http"
	"strconv"
	"time"

	json "github.com/segmentio/encoding/json"
)

var bitgetAllTickerURL = "https://api.bitget.com/api/spot/v1/market/tickers"

type bitgetTicker struct {
	Symbol  string `json:"symbol"`
	Close   string `json:"close"`
	Ts      string `json:"ts"`
	BaseVol string `json:"baseVol"`
}

type bitgetTickerResponse struct {
	Data []bitgetTicker `json:"data"`
}

// Bitget fetches the full spot ticker book, applying a per-row
// staleness check since each ticker carries its own timestamp.
type Bitget struct {
	slot   int
	client *http.Client
}

func NewBitget(slot int) *Bitget {
	return &Bitget{slot: slot, client: newHTTPClient()}
}

func (b *Bitget) Name() string { return "bitget" }
func (b *Bitget) Slot() int    { return b.slot }

func (b *Bitget) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(b.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "", false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bitgetAllTickerURL, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := b.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t bitgetTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	nowMs := uint64(time.Now().UnixMilli())
	for _, row := range t.Data {
		i, ok := idx[row.Symbol]
		if !ok {
			continue
		}
		ts, err := strconv.ParseUint(row.Ts, 10, 64)
		if err != nil || nowMs > ts+maxStalenessMs {
			continue
		}
		price, err := strconv.ParseFloat(row.Close, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row.BaseVol, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return prices, volumes
}
