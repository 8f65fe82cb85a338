// Package models defines the tracker's entity model: a single User owns an
// ordered list of Topics, and each Topic accumulates Resources, Notes, and
// ProgressEntries. Entities serialize to and from JSON exactly; timestamps
// are stored as formatted strings so a load/save round-trip is byte-stable.
package models

import (
	"fmt"
	"strings"
)

// User owns the topic list. There is one user per store.
type User struct {
	Username string   `json:"username"`
	Topics   []*Topic `json:"topics"`
}

// NewUser creates a user with an empty topic list.
func NewUser(username string) *User {
	return &User{Username: username, Topics: []*Topic{}}
}

// AddTopic appends topic to the user's list. Title uniqueness is enforced at
// the boundary before construction, not here.
func (u *User) AddTopic(topic *Topic) {
	u.Topics = append(u.Topics, topic)
}

// FindTopic returns the first topic whose title matches case-insensitively,
// or nil when none does. A linear scan is deliberate: topic counts stay in
// the tens to hundreds, so an index would buy nothing.
func (u *User) FindTopic(title string) *Topic {
	for _, t := range u.Topics {
		if strings.EqualFold(t.Title, title) {
			return t
		}
	}
	return nil
}

// Normalize replaces nil collections with empty ones after decoding, so the
// aggregate always serializes arrays as [] rather than null.
func (u *User) Normalize() {
	if u.Topics == nil {
		u.Topics = []*Topic{}
	}
	for _, t := range u.Topics {
		t.Normalize()
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User(%s)", u.Username)
}
