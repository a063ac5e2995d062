// Package dto defines data transfer objects for the Yahoo Finance API responses.
package dto

// APIError is the error object Yahoo embeds in its response envelopes.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResponse represents the JSON response from the v8/finance/chart endpoint.
// Price arrays run parallel to Timestamps; Yahoo pads gaps with nulls, so the
// per-bar values are pointers.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult is one symbol's slice of the chart response.
type ChartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamps []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}
