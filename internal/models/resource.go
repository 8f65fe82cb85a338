package models

import "fmt"

// Resource types.
const (
	ResourceLink = "link"
	ResourceText = "text"
)

// Resource is a study material attached to a topic: an external link or a
// free-form text fragment. Immutable once created.
type Resource struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// NewResource creates a resource. The caller validates the type and, for
// links, the URL shape before constructing.
func NewResource(resType, content string) *Resource {
	return &Resource{Type: resType, Content: content}
}

func (r *Resource) String() string {
	return fmt.Sprintf("[%s] %s", r.Type, r.Content)
}
