package entity

// SearchResult is one match from a free-text ticker search.
type SearchResult struct {
	Ticker   string
	Name     string // Short name, falls back to the long name
	LongName string // Long name, falls back to the short name
	Exchange string
	Type     string // Instrument type (EQUITY, ETF, ...)
}
