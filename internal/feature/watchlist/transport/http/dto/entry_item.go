package dto

// EntryItem represents a watchlist entry in API responses.
type EntryItem struct {
	ID        uint   `json:"id"`
	TabID     uint   `json:"tab_id"`
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}
