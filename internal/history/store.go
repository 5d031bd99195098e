// # internal/history/store.go
package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"shroud/internal/renamer"
)

// Store persists the old-name to new-name map of a protection run, so a
// protected binary's symbols can be mapped back during crash triage.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open rename map %s: %w", path, err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun writes every committed rename of a run in one transaction.
func (s *Store) RecordRun(ctx context.Context, runID string, renamed []renamer.RenamedSymbol) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO renames(run_id, module, kind, old_name, new_name) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range renamed {
		if _, err := stmt.ExecContext(ctx, runID, r.Module, r.Kind.String(), r.OldName, r.NewName); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Lookup resolves a renamed symbol back to its original name.
func (s *Store) Lookup(ctx context.Context, module, newName string) (string, error) {
	var old string
	err := s.db.QueryRowContext(ctx,
		`SELECT old_name FROM renames WHERE module = ? AND new_name = ? ORDER BY created_at_utc DESC LIMIT 1`,
		module, newName).Scan(&old)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return old, err
}
