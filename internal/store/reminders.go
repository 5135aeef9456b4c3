package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Reminder is one medication reminder. The enabled flag defaults to true
// on creation; SetReminderEnabled is the only mutation (reserved for
// future scheduling work).
type Reminder struct {
	ID        int64
	AccountID int64
	MedName   string
	Dosage    string
	RemindAt  string // strict "HH:MM", validated by the reminder flow
	Frequency string
	Enabled   bool
	CreatedAt time.Time
}

// AddReminder inserts a reminder inside a transaction and returns its
// id. Enabled is forced true on creation.
func (s *Store) AddReminder(ctx context.Context, r Reminder) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO reminders (account_id, med_name, dosage, remind_at, frequency, enabled, created_at)
			VALUES (?, ?, ?, ?, ?, 1, ?)
		`, r.AccountID, r.MedName, r.Dosage, r.RemindAt, r.Frequency, s.now().UTC())
		if err != nil {
			return fmt.Errorf("add reminder: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("add reminder: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListReminders returns the account's reminders ordered by time of day.
func (s *Store) ListReminders(ctx context.Context, accountID int64) ([]Reminder, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, med_name, dosage, remind_at, frequency, enabled, created_at
		FROM reminders
		WHERE account_id = ?
		ORDER BY remind_at, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.AccountID, &r.MedName, &r.Dosage, &r.RemindAt, &r.Frequency, &r.Enabled, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reminders: scan: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// SetReminderEnabled toggles a reminder's enabled flag. updated reports
// whether the reminder existed.
func (s *Store) SetReminderEnabled(ctx context.Context, id int64, enabled bool) (updated bool, err error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE reminders SET enabled = ? WHERE id = ?`, enabled, id)
	if err != nil {
		return false, fmt.Errorf("set reminder enabled: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set reminder enabled: rows affected: %w", err)
	}
	return n > 0, nil
}
