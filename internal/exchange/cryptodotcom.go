package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/segmentio/encoding/json"
)

var cryptoBaseURL = "https://api.crypto.com"

type cryptoTickerData struct {
	Instrument string `json:"i"`
	Ask        string `json:"a"`
	Timestamp  uint64 `json:"t"`
}

type cryptoTickerResponse struct {
	Result struct {
		Data []cryptoTickerData `json:"data"`
	} `json:"result"`
}

// CryptoDotCom is a USD-tier adapter, resolving only the USDT->USD
// anchor; it honours maxStalenessMs since the response carries a
// per-ticker timestamp.
type CryptoDotCom struct {
	slot   int
	client *http.Client
}

func NewCryptoDotCom(slot int) *CryptoDotCom {
	return &CryptoDotCom{slot: slot, client: newHTTPClient()}
}

func (c *CryptoDotCom) Name() string { return "crypto.com" }
func (c *CryptoDotCom) Slot() int    { return c.slot }

func (c *CryptoDotCom) Fetch(ctx context.Context, bases []string, quote string, maxStalenessMs uint64) (prices, volumes []float64) {
	prices = make([]float64, len(bases))
	volumes = make([]float64, len(bases))
	log := logger(c.Name())

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

	url := fmt.Sprintf("%s/v2/public/get-ticker?instrument_name=USDT_USD", cryptoBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("build request failed", "err", err)
		return prices, volumes
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("fetch failed", "err", err)
		return prices, volumes
	}
	defer resp.Body.Close()

	var t cryptoTickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		log.Error("decode failed", "err", err)
		return prices, volumes
	}
	if len(t.Result.Data) == 0 {
		log.Error("empty data")
		return prices, volumes
	}

	row := t.Result.Data[0]
	nowMs := uint64(time.Now().UnixMilli())
	if nowMs > row.Timestamp+maxStalenessMs {
		return prices, volumes
	}

	price, err := strconv.ParseFloat(row.Ask, 64)
	if err != nil {
		log.Error("parse price failed", "err", err)
		return prices, volumes
	}
	prices[usdtIdx] = price
	return prices, volumes
}
