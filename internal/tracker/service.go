// Package tracker implements the application service over the persistence
// adapters. All boundary validation (URL shape, percent range, non-empty
// text) happens here, before any entity is constructed.
package tracker

import (
	"fmt"
	"strings"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/urlcheck"
)

// Service coordinates the entity model and the configured stores. users is
// nil when the relational backend is selected; operations that need the full
// aggregate then fail with apperr.ErrUnsupported (incomplete migration, the
// topics table has no child tables yet).
type Service struct {
	topics storage.TopicStore
	users  storage.UserStore
}

// NewService creates a service. users may be nil for the topics-only backend.
func NewService(topics storage.TopicStore, users storage.UserStore) *Service {
	return &Service{topics: topics, users: users}
}

// ListTopics returns all topics in storage order.
func (s *Service) ListTopics() ([]*models.Topic, error) {
	return s.topics.ListTopics()
}

// CreateTopic creates a topic, rejecting empty and duplicate titles.
func (s *Service) CreateTopic(title, description string) (*models.Topic, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", apperr.ErrValidation)
	}
	return s.topics.CreateTopic(title, strings.TrimSpace(description))
}

// GetTopic returns the topic matching title case-insensitively.
func (s *Service) GetTopic(title string) (*models.Topic, error) {
	return s.topics.GetTopicByTitle(title)
}

// AddResource validates and appends a resource to the named topic.
func (s *Service) AddResource(title, resType, content string) (*models.Resource, error) {
	if s.users == nil {
		return nil, apperr.ErrUnsupported
	}
	resType = strings.ToLower(strings.TrimSpace(resType))
	if resType != models.ResourceLink && resType != models.ResourceText {
		return nil, fmt.Errorf("%w: resource type must be %q or %q",
			apperr.ErrValidation, models.ResourceLink, models.ResourceText)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must not be empty", apperr.ErrValidation)
	}
	if resType == models.ResourceLink && !urlcheck.Valid(content) {
		return nil, fmt.Errorf("%w: content is not a valid URL", apperr.ErrValidation)
	}

	var res *models.Resource
	err := s.users.Session(func(u *models.User) error {
		topic := u.FindTopic(title)
		if topic == nil {
			return apperr.ErrNotFound
		}
		res = models.NewResource(resType, content)
		topic.AddResource(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AddNote validates and appends a note to the named topic.
func (s *Service) AddNote(title, text string) (*models.Note, error) {
	if s.users == nil {
		return nil, apperr.ErrUnsupported
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text must not be empty", apperr.ErrValidation)
	}

	var note *models.Note
	err := s.users.Session(func(u *models.User) error {
		topic := u.FindTopic(title)
		if topic == nil {
			return apperr.ErrNotFound
		}
		note = models.NewNote(text)
		topic.AddNote(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// AddProgress validates and appends a progress entry to the named topic.
func (s *Service) AddProgress(title string, percent int) (*models.ProgressEntry, error) {
	if s.users == nil {
		return nil, apperr.ErrUnsupported
	}
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: percent must be between 0 and 100", apperr.ErrValidation)
	}

	var entry *models.ProgressEntry
	err := s.users.Session(func(u *models.User) error {
		topic := u.FindTopic(title)
		if topic == nil {
			return apperr.ErrNotFound
		}
		entry = models.NewProgressEntry(percent)
		topic.AddProgress(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetUser returns the stored user, or nil when none exists yet.
func (s *Service) GetUser() (*models.User, error) {
	if s.users == nil {
		return nil, apperr.ErrUnsupported
	}
	return s.users.GetUser()
}

// CreateUser creates and persists a new user.
func (s *Service) CreateUser(username string) (*models.User, error) {
	if s.users == nil {
		return nil, apperr.ErrUnsupported
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", apperr.ErrValidation)
	}
	return s.users.CreateUser(username)
}

// RenameUser changes the username.
func (s *Service) RenameUser(username string) error {
	if s.users == nil {
		return apperr.ErrUnsupported
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", apperr.ErrValidation)
	}
	return s.users.Session(func(u *models.User) error {
		u.Username = username
		return nil
	})
}
