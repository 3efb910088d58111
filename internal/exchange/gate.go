package exchange

import (
	"context"
	"net/http"
	"strconv"

	json "github.com/segmentio/encoding/json"
)

var gateAllTickerURL = "https://api.gateio.ws/api/v4/spot/tickers"

type gateTicker struct {
	CurrencyPair string `json:"currency_pair"`
	Last         string `json:"last"`
	BaseVolume   string `json:"base_volume"`
}

// Gate fetches the full spot ticker book; the response carries no
// timestamp, so maxStalenessMs is not applied.
type Gate struct {
	slot   int
	client *http.Client
}

func NewGate(slot int) *Gate {
	return &Gate{slot: slot, client: newHTTPClient()}
}

func (g *Gate) Name() string { return "gate" }
func (g *Gate) Slot() int    { return g.slot }

func (g *Gate) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(g.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "_", false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gateAllTickerURL, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var tickers []gateTicker
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	for _, row := range tickers {
		i, ok := idx[row.CurrencyPair]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(row.Last, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row.BaseVolume, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return prices, volumes
}
