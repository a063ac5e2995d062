package dto

// TabRequest is the request body for creating or renaming a tab.
type TabRequest struct {
	Name string `json:"name" binding:"required"`
}
