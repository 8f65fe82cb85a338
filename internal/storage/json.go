package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/models"
)

// DefaultUsername is given to the lazily created user when a session starts
// against an empty store.
const DefaultUsername = "default"

// document is the persisted JSON shape: a single optional user record.
type document struct {
	User *models.User `json:"user,omitempty"`
}

// JSONStore persists the whole user aggregate as one JSON document. The
// document is loaded once on open and written back whole after every session.
// It is not safe for concurrent use: two overlapping sessions against the
// same file are last-write-wins (see Session).
type JSONStore struct {
	path string
	doc  document
}

// Compile-time interface checks.
var (
	_ UserStore  = (*JSONStore)(nil)
	_ TopicStore = (*JSONStore)(nil)
)

// OpenJSON opens the store backed by the file at path, creating parent
// directories as needed. A missing, unreadable, or malformed file loads as
// an empty store so the tracker stays usable across restarts.
func OpenJSON(path string) (*JSONStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	s := &JSONStore{path: path}
	s.load()
	return s, nil
}

func (s *JSONStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("backing file is malformed, starting empty",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return
	}
	if doc.User != nil {
		doc.User.Normalize()
	}
	s.doc = doc
}

// save writes the whole document atomically: tmp file, fsync, rename. The
// aggregate is never observable half-written.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".wunjo-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// GetUser returns the stored user, or nil when none has been created.
func (s *JSONStore) GetUser() (*models.User, error) {
	return s.doc.User, nil
}

// CreateUser persists a new user with an empty topic list immediately.
func (s *JSONStore) CreateUser(username string) (*models.User, error) {
	user := models.NewUser(username)
	s.doc.User = user
	if err := s.save(); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser overwrites the stored aggregate with user.
func (s *JSONStore) UpdateUser(user *models.User) error {
	s.doc.User = user
	return s.save()
}

// ensureUser returns the stored user, creating one named DefaultUsername in
// memory when the store is empty. The session write-back persists it; the
// auto-create policy and the save mechanics stay independently testable.
func (s *JSONStore) ensureUser() *models.User {
	if s.doc.User == nil {
		s.doc.User = models.NewUser(DefaultUsername)
	}
	return s.doc.User
}

// Session runs fn against the mutable aggregate and writes the document back
// exactly once on return, whether fn succeeded or failed. When fn fails its
// error wins and a save failure is logged; otherwise a save failure is
// returned. There is no locking: overlapping sessions from two stores on the
// same file are last-write-wins.
func (s *JSONStore) Session(fn func(user *models.User) error) error {
	user := s.ensureUser()
	err := fn(user)
	if saveErr := s.save(); saveErr != nil {
		if err == nil {
			return saveErr
		}
		slog.Error("session write-back failed",
			slog.String("path", s.path),
			slog.String("error", saveErr.Error()))
	}
	return err
}

// ListTopics returns all topics in insertion order.
func (s *JSONStore) ListTopics() ([]*models.Topic, error) {
	var topics []*models.Topic
	err := s.Session(func(u *models.User) error {
		topics = u.Topics
		return nil
	})
	return topics, err
}

// CreateTopic appends a new topic, rejecting case-insensitive duplicates
// without mutating the list.
func (s *JSONStore) CreateTopic(title, description string) (*models.Topic, error) {
	var topic *models.Topic
	err := s.Session(func(u *models.User) error {
		if u.FindTopic(title) != nil {
			return apperr.ErrAlreadyExists
		}
		topic = models.NewTopic(title, description)
		u.AddTopic(topic)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topic, nil
}

// GetTopicByTitle returns the topic matching title case-insensitively.
func (s *JSONStore) GetTopicByTitle(title string) (*models.Topic, error) {
	var topic *models.Topic
	err := s.Session(func(u *models.User) error {
		topic = u.FindTopic(title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperr.ErrNotFound
	}
	return topic, nil
}
