// Package catalog writes snapshots of alias providers to a SQLite database
// so external tools can query resolved aliases without loading definitions.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a catalog database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// ExportInfo summarizes one stored snapshot.
type ExportInfo struct {
	ID          string
	CreatedAt   time.Time
	Platform    string
	Generation  uint64
	AliasCount  int
	RecordCount int
}

// Open opens the catalog at path, creating the file and its directory if
// needed. Use ":memory:" for an in-memory database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	return &Store{db: db, path: path, logger: logger}, nil
}

// NewWithDB wraps an open database connection.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for wrapped connections.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate runs all pending schema migrations.
func (s *Store) Migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Write stores snap in a single transaction.
func (s *Store) Write(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO exports (id, created_at, platform, generation, alias_count, record_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt, snap.Platform, int64(snap.Generation), len(snap.Aliases), len(snap.Records), //nolint:gosec // generation counts reloads
	); err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	for _, r := range snap.Records {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO records (export_id, seq, minecraft_id, material, kind, singular, plural, gender, damage, states, tags, flags, related_entity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, r.Seq, r.MinecraftID, r.Material, r.Kind, r.Singular, r.Plural, r.Gender, r.Damage,
			nullString(r.States), nullString(r.Tags), r.Flags, nullString(r.RelatedEntity),
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.MinecraftID, err)
		}
	}

	for _, a := range snap.Aliases {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO aliases (export_id, name, item_count, materials) VALUES (?, ?, ?, ?)`,
			snap.ID, a.Name, a.ItemCount, a.MaterialList(),
		); err != nil {
			return fmt.Errorf("failed to insert alias %q: %w", a.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}

	s.logger.Info("wrote catalog export",
		slog.String("id", snap.ID),
		slog.Int("records", len(snap.Records)),
		slog.Int("aliases", len(snap.Aliases)))
	return nil
}

// Exports lists stored snapshots, newest first.
func (s *Store) Exports(ctx context.Context) ([]ExportInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, platform, generation, alias_count, record_count
		 FROM exports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ExportInfo
	for rows.Next() {
		var info ExportInfo
		var generation int64
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Platform, &generation, &info.AliasCount, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		info.Generation = uint64(generation) //nolint:gosec // written from a uint64
		out = append(out, info)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep exports and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM exports WHERE id NOT IN (
			SELECT id FROM exports ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune exports: %w", err)
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
