package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/swiftgentle/jobcost/pkg/budget"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/roster"
)

// ListEmployees returns the stored wage table.
func (s *Store) ListEmployees(ctx context.Context) (costing.WageTable, error) {
	return loadWages(ctx, s.db)
}

func loadWages(ctx context.Context, q queryer) (costing.WageTable, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, wage FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	wages := make(costing.WageTable)
	for rows.Next() {
		var name string
		var wage float64
		if err := rows.Scan(&name, &wage); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		wages[name] = wage
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return wages, nil
}

// UpsertEmployee adds an employee or replaces the wage of an existing one.
// The edit is checked by roster.Upsert against the stored roster, so it
// fails with the roster package's errors.
func (s *Store) UpsertEmployee(ctx context.Context, name string, wage float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin employee transaction: %w", err)
	}
	defer tx.Rollback()

	wages, err := loadWages(ctx, tx)
	if err != nil {
		return err
	}
	updated, err := roster.Upsert(wages, name, wage)
	if err != nil {
		return err
	}

	key := roster.NormalizeName(name)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO employees (name, wage, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET wage = excluded.wage, updated_at = excluded.updated_at
	`, key, updated[key], s.timestamp()); err != nil {
		return fmt.Errorf("upsert employee %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit employee %q: %w", key, err)
	}

	s.logger.Debug("employee saved",
		zap.String("op", "store.UpsertEmployee"),
		zap.String("employee", key),
		zap.Float64("wage", updated[key]),
		zap.Int("rosterSize", len(updated)),
	)
	return nil
}

// DeleteEmployee removes an employee. It returns roster.ErrUnknownEmployee
// when the name is not on the roster.
func (s *Store) DeleteEmployee(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin employee transaction: %w", err)
	}
	defer tx.Rollback()

	wages, err := loadWages(ctx, tx)
	if err != nil {
		return err
	}
	// Hours live on saved jobs, not on the roster, so there is no hours
	// table to prune here.
	if _, _, err := roster.Remove(wages, nil, name); err != nil {
		return err
	}

	key := roster.NormalizeName(name)
	if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE name = ?`, key); err != nil {
		return fmt.Errorf("delete employee %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit employee %q: %w", key, err)
	}
	return nil
}

// SeedDefaults fills empty roster and budget tables with the built-in
// defaults. Tables that already hold rows are left alone.
func (s *Store) SeedDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count == 0 {
		now := s.timestamp()
		wages := roster.DefaultWages()
		for _, name := range roster.Names(wages) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO employees (name, wage, updated_at) VALUES (?, ?, ?)`,
				name, wages[name], now); err != nil {
				return fmt.Errorf("seed employee %q: %w", name, err)
			}
		}
		s.logger.Info("seeded default roster",
			zap.String("op", "store.SeedDefaults"),
			zap.Int("employees", len(wages)),
		)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM budget_items`).Scan(&count); err != nil {
		return fmt.Errorf("count budget items: %w", err)
	}
	if count == 0 {
		if err := insertDepartments(ctx, tx, budget.DefaultDepartments()); err != nil {
			return err
		}
		s.logger.Info("seeded default budget", zap.String("op", "store.SeedDefaults"))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
