package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS reminder_ledger (
    reminder_key TEXT PRIMARY KEY,
    kind         TEXT NOT NULL DEFAULT '',
    sent_at      TIMESTAMPTZ NOT NULL
)`

// LedgerEntry is one delivered reminder.
type LedgerEntry struct {
	Key    string
	Kind   string
	SentAt time.Time
}

// EnsureSchema creates the reminder ledger table when it is missing.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, ledgerSchema); err != nil {
		return fmt.Errorf("failed to create reminder_ledger: %w", err)
	}
	return nil
}

// Seen reports whether key was recorded at or after since.
func (d *DB) Seen(ctx context.Context, key string, since time.Time) (bool, error) {
	var sentAt time.Time
	err := d.Pool.QueryRow(ctx,
		`SELECT sent_at FROM reminder_ledger WHERE reminder_key = $1`, key,
	).Scan(&sentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up reminder %s: %w", key, err)
	}
	return !sentAt.Before(since), nil
}

// Record upserts key with the delivery time at.
func (d *DB) Record(ctx context.Context, key string, at time.Time) error {
	query := `
	INSERT INTO reminder_ledger (reminder_key, kind, sent_at)
	VALUES ($1, split_part($1, ':', 1), $2)
	ON CONFLICT (reminder_key) DO UPDATE SET sent_at = EXCLUDED.sent_at`
	if _, err := d.Pool.Exec(ctx, query, key, at); err != nil {
		return fmt.Errorf("failed to record reminder %s: %w", key, err)
	}
	return nil
}

// History lists recorded reminders, newest first, with the total count.
func (d *DB) History(ctx context.Context, limit, offset int) ([]LedgerEntry, int, error) {
	var total int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reminder_ledger`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reminders: %w", err)
	}

	rows, err := d.Pool.Query(ctx, `
	SELECT reminder_key, kind, sent_at
	FROM reminder_ledger
	ORDER BY sent_at DESC
	LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var list []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.Key, &e.Kind, &e.SentAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan reminder: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return list, total, nil
}

// Prune deletes entries older than before and returns how many went.
func (d *DB) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM reminder_ledger WHERE sent_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune reminders: %w", err)
	}
	return tag.RowsAffected(), nil
}
