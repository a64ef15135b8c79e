package model

// ListResult is one page of a filtered listing.  Total is the size of the
// whole filtered set, counted separately from the page query.
type ListResult[T any] struct {
    Items      []T   `json:"items"`
    Total      int64 `json:"total"`
    Page       int   `json:"page"`
    Limit      int   `json:"limit"`
    Offset     int   `json:"offset"`
    TotalPages int   `json:"total_pages"`
}
