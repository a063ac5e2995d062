// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Tab represents a named container for a watchlist.
// Tabs are displayed in SortOrder, ties broken by ID.
type Tab struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the database table name for Tab.
func (Tab) TableName() string {
	return "tabs"
}
