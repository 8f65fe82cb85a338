package models

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used throughout the persisted document:
// second-resolution ISO-8601 without a zone offset.
const TimeLayout = "2006-01-02T15:04:05"

func timestamp() string {
	return time.Now().Format(TimeLayout)
}

// Note is a free-form annotation on a topic. Immutable once created.
type Note struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// NewNote creates a note stamped with the current time. Reconstruction from
// storage goes through JSON decoding, which keeps the original stamp.
func NewNote(text string) *Note {
	return &Note{Text: text, CreatedAt: timestamp()}
}

func (n *Note) String() string {
	return fmt.Sprintf("%s: %s", n.CreatedAt, n.Text)
}
