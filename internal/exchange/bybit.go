package exchange

import (
	"context"
	"net/http"
	"strconv"
	"time"

	json "github.com/segmentio/encoding/json"
)

var bybitAllTickerURL = "https://api.bybit.com/v5/market/tickers?category=spot"

type bybitTicker struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	Volume24h string `json:"volume24h"`
}

type bybitTickerResult struct {
	List []bybitTicker `json:"list"`
}

type bybitTickerResponse struct {
	Result bybitTickerResult `json:"result"`
	Time   uint64            `json:"time"`
}

// Bybit fetches the full spot ticker book under a single
// response-wide staleness check.
type Bybit struct {
	slot   int
	client *http.Client
}

func NewBybit(slot int) *Bybit {
	return &Bybit{slot: slot, client: newHTTPClient()}
}

func (b *Bybit) Name() string { return "bybit" }
func (b *Bybit) Slot() int    { return b.slot }

func (b *Bybit) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(b.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "", false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bybitAllTickerURL, nil)
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

	var t bybitTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	nowMs := uint64(time.Now().UnixMilli())
	if nowMs > t.Time+maxStalenessMs {
		return prices, volumes
	}

	for _, row := range t.Result.List {
		i, ok := idx[row.Symbol]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(row.LastPrice, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row.Volume24h, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return prices, volumes
}
