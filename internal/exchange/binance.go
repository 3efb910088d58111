package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	json "github.com/segmentio/encoding/json"
)

var (
	binanceBaseURL   = "https://api.binance.com"
	binanceUSBaseURL = "https://api.binance.us"
)

type binanceMiniTicker struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	Volume    string `json:"volume"`
}

// Binance fetches the general multi-symbol MINI ticker for every base
// except USDT, and separately the USDT->USD anchor quote from the
// dedicated binance.us ticker, writing both into its one row.
type Binance struct {
	slot   int
	client *http.Client
}

func NewBinance(slot int) *Binance {
	return &Binance{slot: slot, client: newHTTPClient()}
}

func (b *Binance) Name() string { return "binance" }
func (b *Binance) Slot() int    { return b.slot }

func (b *Binance) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(b.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	if err := b.fetchMini(ctx, bases, quote, prices, volumes); err != nil {
		log.Error("mini ticker fetch failed", "err", err)
	}
	if err := b.fetchUSDTAnchor(ctx, bases, prices); err != nil {
		log.Error("usdt anchor fetch failed", "err", err)
	}
	return prices, volumes
}

func (b *Binance) fetchMini(ctx context.Context, bases []string, quote string, prices, volumes []float64) error {
	idx := map[string]int{}
	symbols := make([]string, 0, len(bases))
	for i, base := range bases {
		if base == "USDT" {
			continue
		}
		symbols = append(symbols, base+quote)
		idx[base+quote] = i
	}
	if len(symbols) == 0 {
		return nil
	}

	url := fmt.Sprintf(`%s/api/v3/ticker?type=MINI&symbols=["%s"]`, binanceBaseURL, strings.Join(symbols, `","`))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var tickers []binanceMiniTicker
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil {
		return err
	}

	for _, t := range tickers {
		i, ok := idx[t.Symbol]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(t.Volume, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return nil
}

func (b *Binance) fetchUSDTAnchor(ctx context.Context, bases []string, prices []float64) error {
	usdtIdx := -1
	for i, base := range bases {
		if base == "USDT" {
			usdtIdx = i
			break
		}
	}
	if usdtIdx < 0 {
		return nil
	}

	url := fmt.Sprintf("%s/api/v3/ticker?symbol=USDTUSD", binanceUSBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var t binanceMiniTicker
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return err
	}
	price, err := strconv.ParseFloat(t.LastPrice, 64)
	if err != nil {
		return err
	}
	prices[usdtIdx] = price
	return nil
}
