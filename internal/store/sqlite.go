package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
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
	CREATE TABLE IF NOT EXISTS chatbots (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		primary_color TEXT NOT NULL DEFAULT '',
		secondary_color TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL,
		initial_message TEXT NOT NULL DEFAULT '',
		placeholder TEXT NOT NULL DEFAULT '',
		faq_json TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chatbots_owner ON chatbots(owner_id, created_at DESC);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateChatbot persists a new chatbot configuration.
func (s *SQLiteStore) CreateChatbot(ctx context.Context, bot *domain.Chatbot) error {
	faqJSON, err := json.Marshal(bot.FAQ)
	if err != nil {
		return fmt.Errorf("marshal faq list: %w", err)
	}

	query := `
	INSERT INTO chatbots (id, owner_id, title, primary_color, secondary_color,
		position, initial_message, placeholder, faq_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		bot.ID, bot.OwnerID, bot.Title, bot.PrimaryColor, bot.SecondaryColor,
		string(bot.Position), bot.InitialMessage, bot.Placeholder, string(faqJSON),
		bot.CreatedAt.Unix(), bot.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert chatbot: %w", err)
	}
	return nil
}

const chatbotColumns = `id, owner_id, title, primary_color, secondary_color,
	position, initial_message, placeholder, faq_json, created_at, updated_at`

func scanChatbot(row interface{ Scan(...any) error }) (*domain.Chatbot, error) {
	var bot domain.Chatbot
	var position, faqJSON string
	var createdAt, updatedAt int64

	err := row.Scan(
		&bot.ID, &bot.OwnerID, &bot.Title, &bot.PrimaryColor, &bot.SecondaryColor,
		&position, &bot.InitialMessage, &bot.Placeholder, &faqJSON,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bot.Position = domain.Position(position)
	bot.CreatedAt = time.Unix(createdAt, 0)
	bot.UpdatedAt = time.Unix(updatedAt, 0)

	if err := json.Unmarshal([]byte(faqJSON), &bot.FAQ); err != nil {
		return nil, fmt.Errorf("unmarshal faq list: %w", err)
	}
	return &bot, nil
}

// GetChatbot retrieves a chatbot by id.
func (s *SQLiteStore) GetChatbot(ctx context.Context, id string) (*domain.Chatbot, error) {
	query := `SELECT ` + chatbotColumns + ` FROM chatbots WHERE id = ?`

	bot, err := scanChatbot(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan chatbot row: %w", err)
	}
	return bot, nil
}

// ListChatbots retrieves all chatbots owned by ownerID, newest first.
func (s *SQLiteStore) ListChatbots(ctx context.Context, ownerID string) ([]*domain.Chatbot, error) {
	query := `SELECT ` + chatbotColumns + ` FROM chatbots WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query chatbots: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close chatbot rows", "error", closeErr)
		}
	}()

	var bots []*domain.Chatbot
	for rows.Next() {
		bot, err := scanChatbot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chatbot row: %w", err)
		}
		bots = append(bots, bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chatbots: %w", err)
	}
	return bots, nil
}

// UpdateChatbot updates a chatbot's writable fields with an owner check.
func (s *SQLiteStore) UpdateChatbot(ctx context.Context, bot *domain.Chatbot) error {
	faqJSON, err := json.Marshal(bot.FAQ)
	if err != nil {
		return fmt.Errorf("marshal faq list: %w", err)
	}

	query := `
	UPDATE chatbots SET
		title = ?, primary_color = ?, secondary_color = ?, position = ?,
		initial_message = ?, placeholder = ?, faq_json = ?, updated_at = ?
	WHERE id = ? AND owner_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		bot.Title, bot.PrimaryColor, bot.SecondaryColor, string(bot.Position),
		bot.InitialMessage, bot.Placeholder, string(faqJSON), time.Now().Unix(),
		bot.ID, bot.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update chatbot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("UpdateChatbot affected 0 rows", "chatbot_id", bot.ID, "owner_id", bot.OwnerID)
		return ErrNotOwned
	}
	return nil
}

// DeleteChatbot removes a chatbot owned by ownerID.
func (s *SQLiteStore) DeleteChatbot(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM chatbots WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete chatbot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotOwned
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
