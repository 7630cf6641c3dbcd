package stores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db   *sql.DB
	path string
	cfg  Config
}

// Config holds SQLite store configuration
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// Set defaults
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 25
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}

	return &SQLiteStore{
		path: cfg.Path,
		cfg:  cfg,
	}, nil
}

// Init initializes the database connection and enables WAL mode.
func (s *SQLiteStore) Init(ctx context.Context) error {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_txlock=immediate", s.path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Ensure foreign keys are enabled (connection-level setting)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// BeginTx starts a new transaction
func (s *SQLiteStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
}

// CommitTx commits a transaction
func (s *SQLiteStore) CommitTx(tx *sql.Tx) error {
	return tx.Commit()
}

// RollbackTx rolls back a transaction
func (s *SQLiteStore) RollbackTx(tx *sql.Tx) error {
	return tx.Rollback()
}

// CreateResolution persists a new resolution record
func (s *SQLiteStore) CreateResolution(ctx context.Context, res *Resolution) error {
	query := `
		INSERT INTO resolutions (
			id, source_file, host, cross_compiling, platform_tag,
			raw_settings, config, resolved_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		res.ID,
		res.SourceFile,
		res.Host,
		res.CrossCompiling,
		res.PlatformTag,
		res.RawSettings,
		res.Config,
		res.ResolvedAt,
		res.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create resolution: %w", err)
	}

	return nil
}

// GetResolution retrieves a resolution by ID
func (s *SQLiteStore) GetResolution(ctx context.Context, id string) (*Resolution, error) {
	query := `
		SELECT id, source_file, host, cross_compiling, platform_tag,
		       raw_settings, config, resolved_at, created_at
		FROM resolutions
		WHERE id = ?
	`

	res := &Resolution{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID,
		&res.SourceFile,
		&res.Host,
		&res.CrossCompiling,
		&res.PlatformTag,
		&res.RawSettings,
		&res.Config,
		&res.ResolvedAt,
		&res.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resolution not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resolution: %w", err)
	}

	return res, nil
}

// LatestResolution returns the most recently resolved record
func (s *SQLiteStore) LatestResolution(ctx context.Context) (*Resolution, error) {
	query := `
		SELECT id, source_file, host, cross_compiling, platform_tag,
		       raw_settings, config, resolved_at, created_at
		FROM resolutions
		ORDER BY resolved_at DESC
		LIMIT 1
	`

	res := &Resolution{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&res.ID,
		&res.SourceFile,
		&res.Host,
		&res.CrossCompiling,
		&res.PlatformTag,
		&res.RawSettings,
		&res.Config,
		&res.ResolvedAt,
		&res.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no resolutions recorded")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest resolution: %w", err)
	}

	return res, nil
}

// ListResolutions lists resolutions with pagination, newest first
func (s *SQLiteStore) ListResolutions(ctx context.Context, limit, offset int) ([]*Resolution, error) {
	query := `
		SELECT id, source_file, host, cross_compiling, platform_tag,
		       raw_settings, config, resolved_at, created_at
		FROM resolutions
		ORDER BY resolved_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	defer rows.Close()

	return scanResolutions(rows)
}

// ListResolutionsByHost lists resolutions for a host triple, newest first
func (s *SQLiteStore) ListResolutionsByHost(ctx context.Context, host string, limit, offset int) ([]*Resolution, error) {
	query := `
		SELECT id, source_file, host, cross_compiling, platform_tag,
		       raw_settings, config, resolved_at, created_at
		FROM resolutions
		WHERE host = ?
		ORDER BY resolved_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, host, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	defer rows.Close()

	return scanResolutions(rows)
}

func scanResolutions(rows *sql.Rows) ([]*Resolution, error) {
	resolutions := []*Resolution{}
	for rows.Next() {
		res := &Resolution{}
		err := rows.Scan(
			&res.ID,
			&res.SourceFile,
			&res.Host,
			&res.CrossCompiling,
			&res.PlatformTag,
			&res.RawSettings,
			&res.Config,
			&res.ResolvedAt,
			&res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		resolutions = append(resolutions, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resolutions: %w", err)
	}

	return resolutions, nil
}

// DeleteResolution deletes a resolution and its violations
func (s *SQLiteStore) DeleteResolution(ctx context.Context, id string) error {
	query := `DELETE FROM resolutions WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete resolution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("resolution not found: %s", id)
	}

	return nil
}

// AddViolations persists policy violations against a resolution
func (s *SQLiteStore) AddViolations(ctx context.Context, resolutionID string, violations []*ViolationRecord) error {
	if len(violations) == 0 {
		return nil
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO violations (resolution_id, policy, severity, message, remediation, detected_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, v := range violations {
		if _, err := tx.ExecContext(ctx, query,
			resolutionID,
			v.Policy,
			v.Severity,
			v.Message,
			v.Remediation,
			v.DetectedAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit violations: %w", err)
	}

	return nil
}

// ListViolations lists violations recorded against a resolution
func (s *SQLiteStore) ListViolations(ctx context.Context, resolutionID string) ([]*ViolationRecord, error) {
	query := `
		SELECT id, resolution_id, policy, severity, message, remediation, detected_at
		FROM violations
		WHERE resolution_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, resolutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	violations := []*ViolationRecord{}
	for rows.Next() {
		v := &ViolationRecord{}
		err := rows.Scan(
			&v.ID,
			&v.ResolutionID,
			&v.Policy,
			&v.Severity,
			&v.Message,
			&v.Remediation,
			&v.DetectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating violations: %w", err)
	}

	return violations, nil
}

// HealthCheck verifies the database is reachable
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return s.db.PingContext(ctx)
}
