package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
)

// SQLiteRunRepo implements RunRepo over a SQLite connection or transaction.
// Diagnostics are stored as a JSON blob; only the latest run per plan drives
// status reporting, older runs are kept for audit.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, plan_id, status, diagnostics, failure_code, failure_msg, started_at, finished_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.GenerationRun) error {
	diag, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("encoding diagnostics: %w", err)
	}
	query := `INSERT INTO generation_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.PlanID,
		string(run.Status),
		string(diag),
		run.FailureCode,
		run.FailureMsg,
		run.StartedAt.Format(time.RFC3339),
		nullableTimeToString(run.FinishedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.GenerationRun, error) {
	query := `SELECT ` + runColumns + ` FROM generation_runs WHERE id = ?`
	run, err := scanRunFields(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run: %w", ErrNotFound)
	}
	return run, err
}

func (r *SQLiteRunRepo) GetLatestByPlan(ctx context.Context, planID string) (*domain.GenerationRun, error) {
	query := `SELECT ` + runColumns + ` FROM generation_runs WHERE plan_id = ?
		ORDER BY started_at DESC, id DESC LIMIT 1`
	run, err := scanRunFields(r.db.QueryRowContext(ctx, query, planID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run for plan %s: %w", planID, ErrNotFound)
	}
	return run, err
}

func (r *SQLiteRunRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.GenerationRun, error) {
	query := `SELECT ` + runColumns + ` FROM generation_runs WHERE plan_id = ?
		ORDER BY started_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.GenerationRun
	for rows.Next() {
		run, err := scanRunFields(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteRunRepo) Update(ctx context.Context, run *domain.GenerationRun) error {
	diag, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("encoding diagnostics: %w", err)
	}
	query := `UPDATE generation_runs SET status = ?, diagnostics = ?, failure_code = ?, failure_msg = ?, finished_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(run.Status),
		string(diag),
		run.FailureCode,
		run.FailureMsg,
		nullableTimeToString(run.FinishedAt, time.RFC3339),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking run update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

func scanRunFields(row rowScanner) (*domain.GenerationRun, error) {
	var run domain.GenerationRun
	var statusStr, diagStr, startedStr string
	var finishedStr sql.NullString

	err := row.Scan(
		&run.ID, &run.PlanID, &statusStr, &diagStr,
		&run.FailureCode, &run.FailureMsg,
		&startedStr, &finishedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Status = domain.RunStatus(statusStr)
	if err := json.Unmarshal([]byte(diagStr), &run.Diagnostics); err != nil {
		return nil, fmt.Errorf("decoding diagnostics: %w", err)
	}

	var parseErr error
	run.StartedAt, parseErr = time.Parse(time.RFC3339, startedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	run.FinishedAt = parseNullableTime(finishedStr, time.RFC3339)

	return &run, nil
}
