package entity

import "time"

// WatchlistEntry represents a ticker symbol's membership in one Tab.
// Ticker is stored uppercase and is unique per tab, not globally.
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	TabID     uint      `gorm:"not null;uniqueIndex:uq_watchlist_tab_ticker,priority:1"`
	Ticker    string    `gorm:"size:20;not null;uniqueIndex:uq_watchlist_tab_ticker,priority:2"`
	Name      string    `gorm:"size:255"`
	SortOrder int       `gorm:"not null;default:0"`
	AddedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName returns the database table name for WatchlistEntry.
func (WatchlistEntry) TableName() string {
	return "watchlist"
}
