// Package store persists chat messages in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
	"github.com/capitalize-ai/faq-chatbot/migrations"
	"github.com/capitalize-ai/faq-chatbot/pkg/logger"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Config holds SQLite connection configuration.
type Config struct {
	Path            string
	ConnMaxLifetime time.Duration
}

// Store is a SQLite-backed chat message store.
type Store struct {
	db     *sqlx.DB
	logger *logger.Logger
	now    func() time.Time
}

// Open connects to the database at cfg.Path and applies pending migrations.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, DriverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := ApplyMigrations(db.DB, log); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database after migration failure", zap.Error(closeErr))
		}
		return nil, err
	}

	log.Info("database ready", zap.String("path", DatabaseFile(cfg.Path)))
	return New(db, log), nil
}

// New wraps an existing connection. The schema must already exist.
func New(db *sqlx.DB, log *logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ApplyMigrations runs the embedded schema migrations.
func ApplyMigrations(db *sql.DB, log *logger.Logger) error {
	if db == nil {
		return errors.New("database connection is nil, cannot apply migrations")
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("no database migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("database migrations applied")
	return nil
}

// Create inserts a new chat message for userID and returns the stored row.
func (s *Store) Create(ctx context.Context, userID, message string, isBot bool) (*model.ChatMessage, error) {
	now := s.now()
	msg := &model.ChatMessage{
		UserID:    userID,
		Message:   message,
		IsBot:     isBot,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO chat_messages (user_id, message, is_bot, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID, message, isBot, now, now,
	).Scan(&msg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}

	return msg, nil
}

// ListByUser returns the user's messages, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}
	err := s.db.SelectContext(ctx, &messages,
		`SELECT id, user_id, message, is_bot, created_at, updated_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// DeleteByUser removes every message belonging to userID.
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete chat messages: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted chat messages: %w", err)
	}
	return n, nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DatabaseFile strips a file: prefix and query string from a DSN.
func DatabaseFile(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}
	return path
}
