package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS itineraries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		total_distance_m INTEGER NOT NULL,
		total_duration_s INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_itineraries_session ON itineraries(session_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveItinerary stores a computed itinerary.
func (s *SQLiteStore) SaveItinerary(ctx context.Context, record *domain.SavedItinerary) error {
	payload, err := json.Marshal(record.Itinerary)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO itineraries (session_id, payload, total_distance_m, total_duration_s, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.SessionID, string(payload),
		record.Itinerary.TotalDistanceMeters, record.Itinerary.TotalDurationSeconds,
		now.Unix())
	if err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read insert id: %w", err)
	}
	record.ID = id
	record.CreatedAt = now
	return nil
}

// ListItineraries returns saved itineraries newest first.
func (s *SQLiteStore) ListItineraries(ctx context.Context, sessionID string, limit int) ([]*domain.SavedItinerary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, session_id, payload, created_at FROM itineraries
		WHERE (? = '' OR session_id = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, sessionID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query itineraries: %w", err)
	}
	defer rows.Close()

	var records []*domain.SavedItinerary
	for rows.Next() {
		var (
			record    domain.SavedItinerary
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &record.SessionID, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan itinerary: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &record.Itinerary); err != nil {
			return nil, fmt.Errorf("decode itinerary %d: %w", record.ID, err)
		}
		record.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
