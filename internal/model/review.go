package model

import "time"

// Review represents a row in the `reviews` table.  UserID is the reviewer
// and owner; Likes and Dislikes are anonymous counters.
type Review struct {
    ID         uint64    `json:"id"`
    PropertyID uint64    `json:"property_id"`
    UserID     uint64    `json:"user_id"`
    Rating     int       `json:"rating"`
    Content    string    `json:"content"`
    Likes      int       `json:"likes"`
    Dislikes   int       `json:"dislikes"`
    CreatedAt  time.Time `json:"created_at"`
    UpdatedAt  time.Time `json:"updated_at"`
}
