package model

import "time"

// Blog represents a row in the `blogs` table.  AuthorID is the owner.
type Blog struct {
    ID         uint64    `json:"id"`
    Title      string    `json:"title"`
    Category   string    `json:"category"`
    Content    string    `json:"content"`
    Excerpt    string    `json:"excerpt,omitempty"`
    ImageURL   string    `json:"image_url,omitempty"`
    AuthorID   uint64    `json:"author_id"`
    IsFeatured bool      `json:"is_featured"`
    IsActive   bool      `json:"is_active"`
    CreatedAt  time.Time `json:"created_at"`
    UpdatedAt  time.Time `json:"updated_at"`
}
