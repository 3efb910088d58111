package exchange

import (
	"context"
	"net/http"
	"time"

	json "github.com/segmentio/encoding/json"
)

var huobiAllTickerURL = "https://api.huobi.pro/market/tickers"

type huobiTicker struct {
	Symbol string  `json:"symbol"`
	Close  float64 `json:"close"`
	Amount float64 `json:"amount"`
}

type huobiTickerResponse struct {
	Data []huobiTicker `json:"data"`
	Ts   uint64        `json:"ts"`
}

// Huobi fetches the whole ticker book and applies a single
// response-wide staleness check, since Huobi carries one timestamp
// for the entire payload rather than per row.
type Huobi struct {
	slot   int
	client *http.Client
}

func NewHuobi(slot int) *Huobi {
	return &Huobi{slot: slot, client: newHTTPClient()}
}

func (h *Huobi) Name() string { return "huobi" }
func (h *Huobi) Slot() int    { return h.slot }

func (h *Huobi) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(h.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "", true)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, huobiAllTickerURL, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := h.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t huobiTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	nowMs := uint64(time.Now().UnixMilli())
	if nowMs > t.Ts+maxStalenessMs {
		return prices, volumes
	}

	for _, row := range t.Data {
		i, ok := idx[row.Symbol]
		if !ok {
			continue
		}
		prices[i] = row.Close
		volumes[i] = row.Amount
	}
	return prices, volumes
}
