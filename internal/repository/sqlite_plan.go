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

// SQLitePlanRepo implements PlanRepo over a SQLite connection or transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const dateLayout = "2006-01-02"

const planColumns = `id, short_id, name, start_date, exam_date, weekly_minutes, weight_rules, status, archived_at, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	weekly, err := json.Marshal(p.Weekly)
	if err != nil {
		return fmt.Errorf("encoding weekly minutes: %w", err)
	}
	rules, err := encodeRules(p.Rules)
	if err != nil {
		return err
	}
	query := `INSERT INTO study_plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.ExamDate.Format(dateLayout),
		string(weekly),
		rules,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = ?`
	return scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetByShortID(ctx context.Context, shortID string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE UPPER(short_id) = UPPER(?)`
	return scanPlan(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeArchived bool) ([]*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.StudyPlan) error {
	weekly, err := json.Marshal(p.Weekly)
	if err != nil {
		return fmt.Errorf("encoding weekly minutes: %w", err)
	}
	rules, err := encodeRules(p.Rules)
	if err != nil {
		return err
	}
	query := `UPDATE study_plans SET short_id = ?, name = ?, start_date = ?, exam_date = ?, weekly_minutes = ?, weight_rules = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.ExamDate.Format(dateLayout),
		string(weekly),
		rules,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE study_plans SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func encodeRules(rules []domain.WeightRule) (string, error) {
	if len(rules) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("encoding weight rules: %w", err)
	}
	return string(data), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row *sql.Row) (*domain.StudyPlan, error) {
	p, err := scanPlanFields(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan: %w", ErrNotFound)
	}
	return p, err
}

func scanPlanRow(rows *sql.Rows) (*domain.StudyPlan, error) {
	return scanPlanFields(rows)
}

func scanPlanFields(row rowScanner) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var startStr, examStr, weeklyStr, rulesStr, statusStr, createdStr, updatedStr string
	var archivedStr sql.NullString

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Name,
		&startStr, &examStr, &weeklyStr, &rulesStr,
		&statusStr, &archivedStr,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.Status = domain.PlanStatus(statusStr)
	if err := json.Unmarshal([]byte(weeklyStr), &p.Weekly); err != nil {
		return nil, fmt.Errorf("decoding weekly minutes: %w", err)
	}
	if err := json.Unmarshal([]byte(rulesStr), &p.Rules); err != nil {
		return nil, fmt.Errorf("decoding weight rules: %w", err)
	}

	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.ExamDate, parseErr = time.Parse(dateLayout, examStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	p.ArchivedAt = parseNullableTime(archivedStr, time.RFC3339)

	return &p, nil
}
