// Package sqlite implementa los puertos de persistencia sobre un archivo SQLite
// (modernc.org/sqlite, sin cgo). Los timestamps se guardan como nanosegundos
// Unix (UTC) y las cantidades como texto decimal.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/almacen-api/internal/application/ports"
)

//go:embed schema.sql
var schemaSQL string

var _ ports.TxRunner = (*Store)(nil)

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store base SQLite abierta con el esquema aplicado.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) el archivo y aplica el esquema. El esquema es idempotente.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un único escritor: las transacciones se serializan en la conexión.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Positions repositorio de posiciones fuera de transacción.
func (s *Store) Positions() *PositionRepo { return &PositionRepo{q: s.db} }

// Kanban repositorio de palés fuera de transacción.
func (s *Store) Kanban() *KanbanRepo { return &KanbanRepo{q: s.db} }

// History repositorio del histórico fuera de transacción.
func (s *Store) History() *MovementHistoryRepo { return &MovementHistoryRepo{q: s.db} }

// Run ejecuta fn dentro de una transacción; Commit si fn no falla, Rollback en otro caso.
func (s *Store) Run(ctx context.Context, fn ports.TxFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&PositionRepo{q: tx}, &KanbanRepo{q: tx}, &MovementHistoryRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }

func toNanos(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation detecta SQLITE_CONSTRAINT_UNIQUE / PRIMARYKEY por el mensaje del driver.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}
