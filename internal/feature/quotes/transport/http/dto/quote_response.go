// Package dto defines data transfer objects for the quotes HTTP API.
package dto

import (
	"time"

	"market_dashboard/internal/feature/quotes/domain/entity"
)

// QuoteResponse is the API shape of one ticker's quote.
// Pointer fields serialize as null when enrichment had no data.
type QuoteResponse struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	LongName  string  `json:"long_name"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	PrevClose float64 `json:"prev_close"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    int64   `json:"volume"`

	Week52High *float64 `json:"week52_high"`
	Week52Low  *float64 `json:"week52_low"`
	PERatio    *float64 `json:"pe_ratio"`

	PreMarketPrice      *float64 `json:"pre_market_price"`
	PreMarketChange     *float64 `json:"pre_market_change"`
	PreMarketChangePct  *float64 `json:"pre_market_change_pct"`
	PostMarketPrice     *float64 `json:"post_market_price"`
	PostMarketChange    *float64 `json:"post_market_change"`
	PostMarketChangePct *float64 `json:"post_market_change_pct"`

	Updated string `json:"updated"`
}

// FromQuote converts a domain quote to its API shape.
func FromQuote(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Ticker:              q.Ticker,
		Name:                q.Name,
		LongName:            q.LongName,
		Price:               q.Price,
		Change:              q.Change,
		ChangePct:           q.ChangePct,
		PrevClose:           q.PrevClose,
		High:                q.High,
		Low:                 q.Low,
		Volume:              q.Volume,
		Week52High:          q.Week52High,
		Week52Low:           q.Week52Low,
		PERatio:             q.PERatio,
		PreMarketPrice:      q.PreMarketPrice,
		PreMarketChange:     q.PreMarketChange,
		PreMarketChangePct:  q.PreMarketChangePct,
		PostMarketPrice:     q.PostMarketPrice,
		PostMarketChange:    q.PostMarketChange,
		PostMarketChangePct: q.PostMarketChangePct,
		Updated:             q.Updated.Format(time.DateTime),
	}
}
