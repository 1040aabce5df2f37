package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/costing"
)

// JobRecord is a saved job. Wages is the wage table in force when the job
// was saved, so later roster changes do not alter its figures.
type JobRecord struct {
	ID           string             `json:"id"`
	Customer     string             `json:"customer"`
	Inputs       costing.JobInputs  `json:"inputs"`
	Hours        costing.HoursTable `json:"hours"`
	Wages        costing.WageTable  `json:"wages"`
	TotalCost    float64            `json:"totalCost"`
	Profit       float64            `json:"profit"`
	ProfitMargin float64            `json:"profitMargin"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Metrics recomputes the full derived metrics of the job.
func (r JobRecord) Metrics() costing.DerivedMetrics {
	return costing.ComputeJobMetrics(r.Wages, r.Hours, r.Inputs)
}

// SaveJob computes the job's totals, assigns it a new ID and creation time
// and stores it. Any ID or CreatedAt already set on rec is replaced.
func (s *Store) SaveJob(ctx context.Context, rec JobRecord) (JobRecord, error) {
	if rec.Hours == nil {
		rec.Hours = costing.HoursTable{}
	}
	if rec.Wages == nil {
		rec.Wages = costing.WageTable{}
	}
	m := rec.Metrics()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC()
	rec.TotalCost = m.TotalCost
	rec.Profit = m.Profit
	rec.ProfitMargin = m.ProfitMargin

	inputsJSON, err := json.Marshal(rec.Inputs)
	if err != nil {
		return JobRecord{}, fmt.Errorf("encode job inputs: %w", err)
	}
	hoursJSON, err := json.Marshal(rec.Hours)
	if err != nil {
		return JobRecord{}, fmt.Errorf("encode job hours: %w", err)
	}
	wagesJSON, err := json.Marshal(rec.Wages)
	if err != nil {
		return JobRecord{}, fmt.Errorf("encode job wages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, customer, inputs_json, hours_json, wages_json, total_cost, profit, profit_margin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Customer, string(inputsJSON), string(hoursJSON), string(wagesJSON),
		rec.TotalCost, rec.Profit, rec.ProfitMargin, rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return JobRecord{}, fmt.Errorf("insert job: %w", err)
	}

	s.logger.Info("job saved",
		zap.String("op", "store.SaveJob"),
		zap.String("id", rec.ID),
		zap.String("customer", rec.Customer),
		zap.Float64("profit", rec.Profit),
	)
	return rec, nil
}

const jobColumns = `id, customer, inputs_json, hours_json, wages_json, total_cost, profit, profit_margin, created_at`

// GetJob returns the job with the given ID, or ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (JobRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	rec, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return JobRecord{}, fmt.Errorf("job %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return JobRecord{}, err
	}
	return rec, nil
}

// ListJobs returns up to limit jobs, newest first. A non-positive limit
// uses the default, and limits above the maximum are capped.
func (s *Store) ListJobs(ctx context.Context, limit int) ([]JobRecord, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []JobRecord{}
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (JobRecord, error) {
	var (
		rec                              JobRecord
		inputsJSON, hoursJSON, wagesJSON string
		createdAt                        string
	)
	if err := row.Scan(&rec.ID, &rec.Customer, &inputsJSON, &hoursJSON, &wagesJSON,
		&rec.TotalCost, &rec.Profit, &rec.ProfitMargin, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobRecord{}, err
		}
		return JobRecord{}, fmt.Errorf("scan job: %w", err)
	}

	if err := json.Unmarshal([]byte(inputsJSON), &rec.Inputs); err != nil {
		return JobRecord{}, fmt.Errorf("decode inputs of job %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(hoursJSON), &rec.Hours); err != nil {
		return JobRecord{}, fmt.Errorf("decode hours of job %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(wagesJSON), &rec.Wages); err != nil {
		return JobRecord{}, fmt.Errorf("decode wages of job %s: %w", rec.ID, err)
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return JobRecord{}, err
	}
	rec.CreatedAt = t
	return rec, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultListLimit
	}
	if limit > constants.MaxListLimit {
		return constants.MaxListLimit
	}
	return limit
}
