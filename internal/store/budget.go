package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/swiftgentle/jobcost/pkg/budget"
)

// LoadBudget returns every stored department with its subcategories.
func (s *Store) LoadBudget(ctx context.Context) (budget.Departments, error) {
	return loadDepartments(ctx, s.db)
}

func loadDepartments(ctx context.Context, q queryer) (budget.Departments, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT department, subcategory, amount FROM budget_items ORDER BY department, subcategory`)
	if err != nil {
		return nil, fmt.Errorf("query budget items: %w", err)
	}
	defer rows.Close()

	departments := make(budget.Departments)
	for rows.Next() {
		var dept, sub string
		var amount float64
		if err := rows.Scan(&dept, &sub, &amount); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		if departments[dept] == nil {
			departments[dept] = make(map[string]float64)
		}
		departments[dept][sub] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget items: %w", err)
	}
	return departments, nil
}

// AddDepartment creates a department holding the budget package's
// placeholder subcategory. It returns budget.ErrDuplicateDepartment when
// the department already exists.
func (s *Store) AddDepartment(ctx context.Context, dept string) (budget.Departments, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin budget transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := loadDepartments(ctx, tx)
	if err != nil {
		return nil, err
	}
	updated, err := budget.AddDepartment(current, dept)
	if err != nil {
		return nil, err
	}

	dept = strings.TrimSpace(dept)
	for sub, amount := range updated[dept] {
		if err := saveItem(ctx, tx, dept, sub, amount); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit department %q: %w", dept, err)
	}

	s.logger.Info("department added",
		zap.String("op", "store.AddDepartment"),
		zap.String("department", dept),
	)
	return updated, nil
}

// SaveSubcategory sets one budget amount, creating the department and
// subcategory if needed. Names are checked by budget.SetSubcategory.
func (s *Store) SaveSubcategory(ctx context.Context, dept, sub string, amount float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin budget transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := loadDepartments(ctx, tx)
	if err != nil {
		return err
	}
	if _, err := budget.SetSubcategory(current, dept, sub, amount); err != nil {
		return err
	}

	dept = strings.TrimSpace(dept)
	sub = strings.TrimSpace(sub)
	if err := saveItem(ctx, tx, dept, sub, amount); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit budget item %s/%s: %w", dept, sub, err)
	}

	s.logger.Debug("budget item saved",
		zap.String("op", "store.SaveSubcategory"),
		zap.String("department", dept),
		zap.String("subcategory", sub),
		zap.Float64("amount", amount),
	)
	return nil
}

// DeleteDepartment removes a department and all of its subcategories. It
// returns budget.ErrUnknownDepartment when the department does not exist.
func (s *Store) DeleteDepartment(ctx context.Context, dept string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin budget transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := loadDepartments(ctx, tx)
	if err != nil {
		return err
	}
	dept = strings.TrimSpace(dept)
	if _, err := budget.RemoveDepartment(current, dept); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM budget_items WHERE department = ?`, dept); err != nil {
		return fmt.Errorf("delete department %q: %w", dept, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit department %q: %w", dept, err)
	}
	return nil
}

func saveItem(ctx context.Context, tx *sql.Tx, dept, sub string, amount float64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO budget_items (department, subcategory, amount) VALUES (?, ?, ?)
		ON CONFLICT(department, subcategory) DO UPDATE SET amount = excluded.amount
	`, dept, sub, amount)
	if err != nil {
		return fmt.Errorf("save budget item %s/%s: %w", dept, sub, err)
	}
	return nil
}

func insertDepartments(ctx context.Context, tx *sql.Tx, d budget.Departments) error {
	for _, dept := range d.Names() {
		for sub, amount := range d[dept] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO budget_items (department, subcategory, amount) VALUES (?, ?, ?)`,
				dept, sub, amount); err != nil {
				return fmt.Errorf("seed budget item %s/%s: %w", dept, sub, err)
			}
		}
	}
	return nil
}
