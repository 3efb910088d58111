package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	json "github.com/segmentio/encoding/json"
)

var coinbaseBaseURL = "https://api.coinbase.com"

type coinbaseTickerResponse struct {
	Data struct {
		Base   string `json:"base"`
		Amount string `json:"amount"`
	} `json:"data"`
}

// Coinbase is a USD-tier adapter: it only resolves the USDT->USD
// anchor and writes exactly one cell, the USDT column, in its row.
type Coinbase struct {
	slot   int
	client *http.Client
}

func NewCoinbase(slot int) *Coinbase {
	return &Coinbase{slot: slot, client: newHTTPClient()}
}

func (c *Coinbase) Name() string { return "coinbase" }
func (c *Coinbase) Slot() int    { return c.slot }

func (c *Coinbase) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

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

	url := fmt.Sprintf("%s/v2/prices/USDT-USD/spot", coinbaseBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger(c.Name()).Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := c.client.Do(req)
	if err != nil {
		logger(c.Name()).Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t coinbaseTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		logger(c.Name()).Error("decode failed", "err", err)
		return prices, volumes
	}
	price, err := strconv.ParseFloat(t.Data.Amount, 64)
	if err != nil {
		logger(c.Name()).Error("parse price failed", "err", err)
		return prices, volumes
	}
	prices[usdtIdx] = price
	return prices, volumes
}
