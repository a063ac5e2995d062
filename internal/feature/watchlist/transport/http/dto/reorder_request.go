package dto

// ReorderRequest is the request body for reordering a tab's watchlist.
// Entry positions follow the order of Tickers; unknown tickers are ignored.
type ReorderRequest struct {
	Tickers []string `json:"tickers"`
}
