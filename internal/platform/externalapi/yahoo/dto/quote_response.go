package dto

// QuoteResponse represents the JSON response from the v7/finance/quote endpoint.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []QuoteItem `json:"result"`
		Error  *APIError   `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteItem is one symbol's quote record. Numeric fields are pointers because
// Yahoo omits them for instruments that don't have them (funds, indices).
type QuoteItem struct {
	Symbol           string   `json:"symbol"`
	ShortName        string   `json:"shortName"`
	LongName         string   `json:"longName"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	TrailingPE       *float64 `json:"trailingPE"`
	ForwardPE        *float64 `json:"forwardPE"`
	PreMarketPrice   *float64 `json:"preMarketPrice"`
	PostMarketPrice  *float64 `json:"postMarketPrice"`
}
