package models

import "fmt"

// ProgressEntry records completion percent for a topic at a point in time.
// Immutable once created.
type ProgressEntry struct {
	Percent int    `json:"percent"`
	Date    string `json:"date"`
}

// NewProgressEntry creates an entry stamped with the current time. The caller
// validates the 0..100 range before constructing.
func NewProgressEntry(percent int) *ProgressEntry {
	return &ProgressEntry{Percent: percent, Date: timestamp()}
}

func (p *ProgressEntry) String() string {
	return fmt.Sprintf("%s: %d%%", p.Date, p.Percent)
}
