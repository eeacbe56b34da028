package domain

import "time"

type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"author_id,omitempty"`
	Category  string     `json:"category"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Urgent announcements are highlighted on the dashboard.
func (a Announcement) Urgent() bool {
	return a.Category == "urgent"
}
