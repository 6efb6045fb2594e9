package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over a SQLite connection or
// transaction. BulkCreate is the generation path; callers wrap it in a
// UnitOfWork so a failed run never leaves a half-written calendar.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, plan_id, topic_id, part_index, date, minutes, kind, review_stage, status, label, created_at, updated_at`

func (r *SQLiteSessionRepo) BulkCreate(ctx context.Context, sessions []domain.StudySession) error {
	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range sessions {
		s := &sessions[i]
		var topicID interface{}
		if s.TopicID != "" {
			topicID = s.TopicID
		}
		_, err := r.db.ExecContext(ctx, query,
			s.ID,
			s.PlanID,
			topicID,
			nullableIntToValue(s.PartIndex),
			s.Date.Format(dateLayout),
			s.Minutes,
			string(s.Kind),
			s.ReviewStage,
			string(s.Status),
			s.Label,
			s.CreatedAt.Format(time.RFC3339),
			s.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting session %d of %d: %w", i+1, len(sessions), err)
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`
	s, err := scanSessionFields(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	return s, err
}

// GetByIDPrefix resolves a session by a unique ID prefix, so CLI users can
// type the first few characters instead of the full UUID.
func (r *SQLiteSessionRepo) GetByIDPrefix(ctx context.Context, prefix string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id LIKE ? LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("resolving session prefix: %w", err)
	}
	defer rows.Close()

	var matches []*domain.StudySession
	for rows.Next() {
		s, err := scanSessionFields(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session matches: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("session %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("session %q: %w", prefix, ErrAmbiguousPrefix)
	}
}

func (r *SQLiteSessionRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE plan_id = ? ORDER BY date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanSessionFields(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) CountByStatus(ctx context.Context, planID string) (map[domain.SessionStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM study_sessions WHERE plan_id = ? GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SessionStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning session count: %w", err)
		}
		counts[domain.SessionStatus(status)] = count
	}
	return counts, rows.Err()
}

func (r *SQLiteSessionRepo) UpdateStatus(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(s.Status), s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating session status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking session update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) DeleteByPlan(ctx context.Context, planID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("deleting plan sessions: %w", err)
	}
	return nil
}

func scanSessionFields(row rowScanner) (*domain.StudySession, error) {
	var s domain.StudySession
	var topicID sql.NullString
	var partIndex sql.NullInt64
	var dateStr, kindStr, statusStr, createdStr, updatedStr string

	err := row.Scan(
		&s.ID, &s.PlanID, &topicID, &partIndex,
		&dateStr, &s.Minutes, &kindStr, &s.ReviewStage,
		&statusStr, &s.Label,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if topicID.Valid {
		s.TopicID = topicID.String
	}
	if partIndex.Valid {
		idx := int(partIndex.Int64)
		s.PartIndex = &idx
	}
	s.Kind = domain.SessionKind(kindStr)
	s.Status = domain.SessionStatus(statusStr)

	var parseErr error
	s.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &s, nil
}
