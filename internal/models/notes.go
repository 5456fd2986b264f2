package models

// ResearchNote is a purely local note; it is never sent to the backend.
type ResearchNote struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	LastUpdated string `json:"last_updated"`
}
