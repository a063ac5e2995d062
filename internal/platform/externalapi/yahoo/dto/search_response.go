package dto

// SearchResponse represents the JSON response from the v1/finance/search endpoint.
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote is one match in a search response.
// Yahoo uses all-lowercase keys here, unlike the quote endpoint.
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	Exchange  string `json:"exchange"`
	QuoteType string `json:"quoteType"`
}
