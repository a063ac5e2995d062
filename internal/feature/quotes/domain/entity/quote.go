// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Quote holds current and derived price statistics for one ticker at request time.
// Pointer fields come from best-effort enrichment and stay nil when the provider
// has no data for them. Pre/post market change fields are computed against the
// regular-session price and are only set when the extended-hours price is
// strictly positive.
type Quote struct {
	Ticker    string
	Name      string    // Short display name, falls back to the ticker
	LongName  string    // Full company/fund name, falls back to Name
	Price     float64   // Most recent daily close
	Change    float64   // Price - PrevClose
	ChangePct float64   // Change / PrevClose * 100 (0 when PrevClose is 0)
	PrevClose float64   // Second most recent close, or Price with a single bar
	High      float64   // Most recent bar's high
	Low       float64   // Most recent bar's low
	Volume    int64     // Most recent bar's volume
	Updated   time.Time // When this quote was assembled

	Week52High *float64
	Week52Low  *float64
	PERatio    *float64 // Trailing P/E, falling back to forward P/E

	PreMarketPrice      *float64
	PreMarketChange     *float64
	PreMarketChangePct  *float64
	PostMarketPrice     *float64
	PostMarketChange    *float64
	PostMarketChangePct *float64
}

// QuoteFacts is the raw enrichment data a provider returns for one symbol.
// Every field is optional; the aggregator decides what to derive from it.
type QuoteFacts struct {
	ShortName       string
	LongName        string
	Week52High      *float64
	Week52Low       *float64
	TrailingPE      *float64
	ForwardPE       *float64
	PreMarketPrice  *float64
	PostMarketPrice *float64
}
