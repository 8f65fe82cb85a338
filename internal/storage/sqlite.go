package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/models"
)

const topicsSchemaSQL = `
CREATE TABLE IF NOT EXISTS topics (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_topics_title ON topics(title);
`

// topicRow mirrors one row of the topics table.
type topicRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
}

// SQLiteStore stores topic rows directly in a table. It is an incomplete
// migration: there are no resources, notes, progress, or user tables yet,
// so it implements TopicStore only and shares no state with JSONStore.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ TopicStore = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the SQLite database and applies the schema.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := db.Exec(topicsSchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListTopics returns all topics in insertion (row id) order. Child
// collections are always empty in this slice.
func (s *SQLiteStore) ListTopics() ([]*models.Topic, error) {
	var rows []topicRow
	if err := s.db.Select(&rows, `SELECT id, title, description FROM topics ORDER BY id`); err != nil {
		return nil, fmt.Errorf("storage: list topics: %w", err)
	}
	topics := make([]*models.Topic, len(rows))
	for i, r := range rows {
		topics[i] = models.NewTopic(r.Title, r.Description)
	}
	return topics, nil
}

// CreateTopic inserts a row, rejecting case-insensitive duplicates to match
// the JSON adapter's title invariant.
func (s *SQLiteStore) CreateTopic(title, description string) (*models.Topic, error) {
	if _, err := s.GetTopicByTitle(title); err == nil {
		return nil, apperr.ErrAlreadyExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.db.Exec(`INSERT INTO topics (title, description) VALUES (?, ?)`, title, description); err != nil {
		return nil, fmt.Errorf("storage: insert topic: %w", err)
	}
	return models.NewTopic(title, description), nil
}

// GetTopicByTitle returns the topic matching title case-insensitively.
func (s *SQLiteStore) GetTopicByTitle(title string) (*models.Topic, error) {
	var row topicRow
	err := s.db.Get(&row, `SELECT id, title, description FROM topics WHERE title = ? COLLATE NOCASE`, title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get topic: %w", err)
	}
	return models.NewTopic(row.Title, row.Description), nil
}
