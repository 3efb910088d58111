package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/segmentio/encoding/json"
)

var okxBaseURL = "https://www.okx.com/api"

type okxTicker struct {
	InstID string `json:"instId"`
	Last   string `json:"last"`
	Vol24h string `json:"vol24h"`
	Ts     string `json:"ts"`
}

type okxTickerResponse struct {
	Data []okxTicker `json:"data"`
}

// OKX fetches the full SPOT ticker book in one call and picks out the
// configured pairs, dropping rows older than maxStalenessMs.
type OKX struct {
	slot   int
	client *http.Client
}

func NewOKX(slot int) *OKX {
	return &OKX{slot: slot, client: newHTTPClient()}
}

func (o *OKX) Name() string { return "okx" }
func (o *OKX) Slot() int    { return o.slot }

func (o *OKX) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	log := logger(o.Name())
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))

	idx := pairIndex(bases, quote, "-", false)

	url := fmt.Sprintf("%s/v5/market/tickers?instType=SPOT", okxBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := o.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t okxTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}

	nowMs := uint64(time.Now().UnixMilli())
	for _, row := range t.Data {
		i, ok := idx[row.InstID]
		if !ok {
			continue
		}
		ts, err := strconv.ParseUint(row.Ts, 10, 64)
		if err != nil || nowMs > ts+maxStalenessMs {
			continue
		}
		price, err := strconv.ParseFloat(row.Last, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(row.Vol24h, 64)
		if err != nil {
			continue
		}
		prices[i] = price
		volumes[i] = volume
	}
	return prices, volumes
}
