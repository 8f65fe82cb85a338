// Package storage provides the persistence adapters: a JSON document store
// holding the whole user aggregate, and a topics-only SQLite store.
package storage

import "github.com/starford/wunjo/internal/models"

// UserStore manages the full user aggregate as one unit of persistence.
type UserStore interface {
	// GetUser returns the stored user, or nil when none has been created.
	GetUser() (*models.User, error)
	// CreateUser persists a new user with an empty topic list immediately.
	CreateUser(username string) (*models.User, error)
	// UpdateUser overwrites the stored aggregate with user.
	UpdateUser(user *models.User) error
	// Session yields the mutable aggregate, creating a default user first if
	// none exists, and writes it back exactly once when fn returns.
	Session(fn func(user *models.User) error) error
}

// TopicStore is the narrower capability both backends provide.
type TopicStore interface {
	// ListTopics returns all topics in storage order.
	ListTopics() ([]*models.Topic, error)
	// CreateTopic inserts a topic, or apperr.ErrAlreadyExists when a topic
	// with the same title (case-insensitive) is present.
	CreateTopic(title, description string) (*models.Topic, error)
	// GetTopicByTitle returns the topic matching title case-insensitively,
	// or apperr.ErrNotFound.
	GetTopicByTitle(title string) (*models.Topic, error)
}
