package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Account is a registered end-user. Accounts are created on first
// successful registration and never deleted; only the banned flag is
// mutable, and only through admin actions.
type Account struct {
	ID           int64
	DisplayName  string
	RegisteredAt time.Time
	Banned       bool
}

// CreateAccount registers an account. If the account already exists the
// call is a no-op that preserves the stored display name and banned
// flag; created reports whether a new row was inserted.
func (s *Store) CreateAccount(ctx context.Context, id int64, displayName string) (created bool, err error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, display_name, registered_at, banned)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(id) DO NOTHING
	`, id, displayName, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("create account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create account: rows affected: %w", err)
	}
	return n > 0, nil
}

// GetAccount looks up an account by id. The second return value reports
// whether the account exists.
func (s *Store) GetAccount(ctx context.Context, id int64) (Account, bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var a Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, registered_at, banned
		FROM accounts WHERE id = ?
	`, id).Scan(&a.ID, &a.DisplayName, &a.RegisteredAt, &a.Banned)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("get account: %w", err)
	}
	return a, true, nil
}

// IsRegistered reports whether the account exists.
func (s *Store) IsRegistered(ctx context.Context, id int64) (bool, error) {
	_, ok, err := s.GetAccount(ctx, id)
	return ok, err
}

// IsBanned reports whether the account exists and carries the banned
// flag. Unknown accounts are not banned.
func (s *Store) IsBanned(ctx context.Context, id int64) (bool, error) {
	a, ok, err := s.GetAccount(ctx, id)
	if err != nil {
		return false, err
	}
	return ok && a.Banned, nil
}

// SetBanned toggles the banned flag. updated reports whether the account
// existed; banning an unknown id is a no-op, not an error.
func (s *Store) SetBanned(ctx context.Context, id int64, banned bool) (updated bool, err error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET banned = ? WHERE id = ?`, banned, id)
	if err != nil {
		return false, fmt.Errorf("set banned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set banned: rows affected: %w", err)
	}
	return n > 0, nil
}

// ListRecentAccounts returns up to limit accounts, newest registration
// first.
func (s *Store) ListRecentAccounts(ctx context.Context, limit int) ([]Account, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, registered_at, banned
		FROM accounts
		ORDER BY registered_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.DisplayName, &a.RegisteredAt, &a.Banned); err != nil {
			return nil, fmt.Errorf("list accounts: scan: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
