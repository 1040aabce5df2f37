package store

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Snapshot is one sample of the budget grand total.
type Snapshot struct {
	ID      int64     `json:"id"`
	Total   float64   `json:"total"`
	TakenAt time.Time `json:"takenAt"`
}

// RecordSnapshot stores the current budget grand total.
func (s *Store) RecordSnapshot(ctx context.Context, total float64) (Snapshot, error) {
	taken := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_snapshots (total, taken_at) VALUES (?, ?)`,
		total, taken.Format(timeLayout))
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert budget snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Snapshot{}, fmt.Errorf("read budget snapshot id: %w", err)
	}
	return Snapshot{ID: id, Total: total, TakenAt: taken}, nil
}

// ListSnapshots returns the most recent limit snapshots, oldest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, total, taken_at FROM budget_snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query budget snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		var taken string
		if err := rows.Scan(&snap.ID, &snap.Total, &taken); err != nil {
			return nil, fmt.Errorf("scan budget snapshot: %w", err)
		}
		if snap.TakenAt, err = parseTimestamp(taken); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget snapshots: %w", err)
	}
	slices.Reverse(snapshots)
	return snapshots, nil
}
