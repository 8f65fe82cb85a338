package models

import "fmt"

// Topic groups resources, notes, and progress entries under one subject.
// Child collections are append-only; ordering is insertion order.
type Topic struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Resources   []*Resource      `json:"resources"`
	Notes       []*Note          `json:"notes"`
	Progress    []*ProgressEntry `json:"progress"`
}

// NewTopic creates a topic with empty child collections.
func NewTopic(title, description string) *Topic {
	return &Topic{
		Title:       title,
		Description: description,
		Resources:   []*Resource{},
		Notes:       []*Note{},
		Progress:    []*ProgressEntry{},
	}
}

// AddResource appends res. Validation happens at the boundary before the
// resource is constructed.
func (t *Topic) AddResource(res *Resource) {
	t.Resources = append(t.Resources, res)
}

// AddNote appends note.
func (t *Topic) AddNote(note *Note) {
	t.Notes = append(t.Notes, note)
}

// AddProgress appends entry.
func (t *Topic) AddProgress(entry *ProgressEntry) {
	t.Progress = append(t.Progress, entry)
}

// Normalize replaces nil child collections with empty ones after decoding.
func (t *Topic) Normalize() {
	if t.Resources == nil {
		t.Resources = []*Resource{}
	}
	if t.Notes == nil {
		t.Notes = []*Note{}
	}
	if t.Progress == nil {
		t.Progress = []*ProgressEntry{}
	}
}

func (t *Topic) String() string {
	return fmt.Sprintf("Topic(%s)", t.Title)
}
