package persist

import (
	"encoding/json"
	"time"
)

// PresentationRecord is the stored form of a generated presentation. Data is
// the full deck JSON; Theme is the viewer theme it was saved with.
type PresentationRecord struct {
	ID        string
	Owner     string
	Title     string
	Data      string
	Theme     string
	CreatedAt time.Time
}

// PresentationSummary is the listing projection of a record.
type PresentationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"createdAt"`
}

// UsageRecord is one per-owner, per-calendar-date usage counter.
type UsageRecord struct {
	Owner string
	Date  string // YYYY-MM-DD
	Count int
}

// toJSON converts an object to a JSON string
func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// TodayDate returns today's date in YYYY-MM-DD format
func TodayDate() string {
	return time.Now().Format("2006-01-02")
}
