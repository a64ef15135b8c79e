package model

import "time"

// Event statuses.  Any other value is rejected by the event service.
const (
    EventStatusActive    = "active"
    EventStatusCancelled = "cancelled"
    EventStatusPostponed = "postponed"
    EventStatusCompleted = "completed"
)

// EventStatuses lists the accepted lifecycle values.
var EventStatuses = []string{EventStatusActive, EventStatusCancelled, EventStatusPostponed, EventStatusCompleted}

// Event represents a row in the `events` table.  CreatedBy is the owner and
// never changes after creation.  EventTime is always HH:MM:SS.
type Event struct {
    ID          uint64    `json:"id"`
    EventName   string    `json:"event_name"`
    Description string    `json:"description,omitempty"`
    EventDate   string    `json:"event_date"`
    EventTime   string    `json:"event_time"`
    Location    string    `json:"location"`
    EventType   string    `json:"event_type"`
    ImageURL    string    `json:"image_url,omitempty"`
    CreatedBy   uint64    `json:"created_by"`
    Status      string    `json:"status"`
    IsFeatured  bool      `json:"is_featured"`
    ShowOnHome  bool      `json:"show_on_home"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}
