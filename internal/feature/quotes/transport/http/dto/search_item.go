package dto

// SearchItem is the API shape of one ticker search match.
type SearchItem struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	LongName string `json:"long_name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}
