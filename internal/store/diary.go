package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DiaryEntry is one wellbeing diary record. Entries are immutable once
// created and append-only per account.
type DiaryEntry struct {
	ID        int64
	AccountID int64
	CreatedAt time.Time
	Mood      string
	Symptoms  string
	Notes     string
}

// FallbackPolicy controls graceful degradation on insert. Columns listed
// in OptionalColumns may be omitted when the insert fails with a schema
// error naming one of them (e.g. an older database file missing the
// column); errors unrelated to the optional columns pass through
// untouched.
type FallbackPolicy struct {
	OptionalColumns []string
}

// NoFallback disables graceful degradation: every column is required.
var NoFallback = FallbackPolicy{}

// OptionalNotes allows the diary notes column to be dropped on a schema
// error.
var OptionalNotes = FallbackPolicy{OptionalColumns: []string{"notes"}}

// AddDiaryEntry appends an entry for the account inside a transaction.
// The entry's CreatedAt is stamped by the store clock.
//
// With a fallback policy, a schema error naming an optional column
// triggers exactly one retry with those columns omitted; the omitted
// names are returned so the caller can flag the degradation in its
// response. On any other failure the transaction rolls back whole.
func (s *Store) AddDiaryEntry(ctx context.Context, e DiaryEntry, policy FallbackPolicy) (id int64, omitted []string, err error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, insErr := tx.ExecContext(ctx, `
			INSERT INTO diary_entries (account_id, created_at, mood, symptoms, notes)
			VALUES (?, ?, ?, ?, ?)
		`, e.AccountID, s.now().UTC(), e.Mood, e.Symptoms, e.Notes)
		if insErr != nil {
			col, ok := missingColumn(insErr, policy.OptionalColumns)
			if !ok || col != "notes" {
				return fmt.Errorf("add diary entry: %w", insErr)
			}

			// Older database file without the optional column: degrade
			// once and report the omission.
			res, insErr = tx.ExecContext(ctx, `
				INSERT INTO diary_entries (account_id, created_at, mood, symptoms)
				VALUES (?, ?, ?, ?)
			`, e.AccountID, s.now().UTC(), e.Mood, e.Symptoms)
			if insErr != nil {
				return fmt.Errorf("add diary entry (degraded): %w", insErr)
			}
			omitted = append(omitted, col)
		}

		var lastErr error
		id, lastErr = res.LastInsertId()
		if lastErr != nil {
			return fmt.Errorf("add diary entry: last insert id: %w", lastErr)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return id, omitted, nil
}

// ListDiaryEntries returns up to limit entries for the account, newest
// first.
func (s *Store) ListDiaryEntries(ctx context.Context, accountID int64, limit int) ([]DiaryEntry, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, created_at, mood, symptoms, notes
		FROM diary_entries
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	defer rows.Close()

	var entries []DiaryEntry
	for rows.Next() {
		var e DiaryEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.CreatedAt, &e.Mood, &e.Symptoms, &e.Notes); err != nil {
			return nil, fmt.Errorf("list diary entries: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}

// missingColumn reports which of the candidate columns a SQLite schema
// error complains about, if any. SQLite phrases the failure as either
// "table X has no column named C" or "no such column: C".
func missingColumn(err error, candidates []string) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	for _, col := range candidates {
		if strings.Contains(msg, "no column named "+col) ||
			strings.Contains(msg, "no such column: "+col) {
			return col, true
		}
	}
	return "", false
}
