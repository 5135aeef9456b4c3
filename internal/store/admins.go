package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// The admins table is the single source of truth for admin membership.
// The static allowlist from configuration only seeds it at startup;
// runtime checks always read the table.

// SeedAdmins inserts the given account ids into the admins table,
// ignoring ids already present. Runs as one transaction.
func (s *Store) SeedAdmins(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO admins (account_id) VALUES (?)
				ON CONFLICT(account_id) DO NOTHING
			`, id); err != nil {
				return fmt.Errorf("seed admin %d: %w", id, err)
			}
		}
		return nil
	})
}

// IsAdmin reports whether the account id is in the admins table.
func (s *Store) IsAdmin(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM admins WHERE account_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is admin: %w", err)
	}
	return true, nil
}
