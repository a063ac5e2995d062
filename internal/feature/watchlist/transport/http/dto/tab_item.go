// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

// TabItem represents a tab in API responses.
type TabItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}
