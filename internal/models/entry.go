package models

// DailyEntry is a single journal record.
//
// Timestamp is the creation instant in milliseconds since epoch and is the
// sole field used for recency ordering and time-window filtering. Date is the
// calendar date the user chose for the entry and is used only for display and
// report labeling; the two may differ.
type DailyEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
	Mood      Mood   `json:"mood"`
	Timestamp int64  `json:"timestamp"`
}
