package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	json "github.com/segmentio/encoding/json"
)

var krakenBaseURL = "https://api.kraken.com"

type krakenTicker struct {
	Close []string `json:"c"`
}

type krakenTickerResponse struct {
	Result map[string]krakenTicker `json:"result"`
}

// Kraken is a USD-tier adapter, resolving only the USDT->USD anchor
// via Kraken's USDTZUSD pair.
type Kraken struct {
	slot   int
	client *http.Client
}

func NewKraken(slot int) *Kraken {
	return &Kraken{slot: slot, client: newHTTPClient()}
}

func (k *Kraken) Name() string { return "kraken" }
func (k *Kraken) Slot() int    { return k.slot }

func (k *Kraken) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))
	log := logger(k.Name())

	usdtIdx := -1
	for i, base := range bases {
		if base == "USDT" {
			usdtIdx = i
			break
		}
	}
	if usdtIdx < 0 {
		return prices, volumes
	}

	url := fmt.Sprintf("%s/0/public/Ticker?pair=USDTZUSD", krakenBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := k.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t krakenTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}
	if len(t.Result) == 0 {
		log.Error("empty result")
		return prices, volumes
	}
	ticker, ok := t.Result["USDTZUSD"]
	if !ok || len(ticker.Close) != 2 {
		log.Error("usdt pair missing or malformed")
		return prices, volumes
	}
	price, err := strconv.ParseFloat(ticker.Close[0], 64)
	if err != nil {
		log.Error("parse price failed", "err", err)
		return prices, volumes
	}
	prices[usdtIdx] = price
	return prices, volumes
}
