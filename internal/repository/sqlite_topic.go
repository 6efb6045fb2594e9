package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
)

// SQLiteTopicRepo implements TopicRepo over a SQLite connection or transaction.
// Parts live in their own table and are loaded with every topic.
type SQLiteTopicRepo struct {
	db db.DBTX
}

// NewSQLiteTopicRepo creates a new SQLiteTopicRepo.
func NewSQLiteTopicRepo(conn db.DBTX) *SQLiteTopicRepo {
	return &SQLiteTopicRepo{db: conn}
}

const topicColumns = `id, plan_id, title, block, complexity, priority, planned_min, created_at, updated_at`

func (r *SQLiteTopicRepo) Create(ctx context.Context, t *domain.Topic) error {
	query := `INSERT INTO topics (` + topicColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.PlanID,
		t.Title,
		t.Block,
		string(t.Complexity),
		t.Priority,
		t.PlannedMin,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting topic: %w", err)
	}
	return r.replaceParts(ctx, t)
}

func (r *SQLiteTopicRepo) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE id = ?`
	t, err := scanTopicFields(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("topic: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadParts(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTopicRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics WHERE plan_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []*domain.Topic
	for rows.Next() {
		t, err := scanTopicFields(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}

	for _, t := range topics {
		if err := r.loadParts(ctx, t); err != nil {
			return nil, err
		}
	}
	return topics, nil
}

func (r *SQLiteTopicRepo) Update(ctx context.Context, t *domain.Topic) error {
	query := `UPDATE topics SET title = ?, block = ?, complexity = ?, priority = ?, planned_min = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Block,
		string(t.Complexity),
		t.Priority,
		t.PlannedMin,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating topic: %w", err)
	}
	return r.replaceParts(ctx, t)
}

func (r *SQLiteTopicRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}
	return nil
}

// replaceParts rewrites the topic's part rows to match t.Parts.
func (r *SQLiteTopicRepo) replaceParts(ctx context.Context, t *domain.Topic) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM topic_parts WHERE topic_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing topic parts: %w", err)
	}
	for i, part := range t.Parts {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO topic_parts (topic_id, part_index, title, fraction) VALUES (?, ?, ?, ?)`,
			t.ID, i, part.Title, part.Fraction,
		)
		if err != nil {
			return fmt.Errorf("inserting topic part %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteTopicRepo) loadParts(ctx context.Context, t *domain.Topic) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, fraction FROM topic_parts WHERE topic_id = ? ORDER BY part_index`, t.ID)
	if err != nil {
		return fmt.Errorf("loading topic parts: %w", err)
	}
	defer rows.Close()

	t.Parts = nil
	for rows.Next() {
		var part domain.TopicPart
		if err := rows.Scan(&part.Title, &part.Fraction); err != nil {
			return fmt.Errorf("scanning topic part: %w", err)
		}
		t.Parts = append(t.Parts, part)
	}
	return rows.Err()
}

func scanTopicFields(row rowScanner) (*domain.Topic, error) {
	var t domain.Topic
	var complexityStr, createdStr, updatedStr string

	err := row.Scan(
		&t.ID, &t.PlanID, &t.Title, &t.Block,
		&complexityStr, &t.Priority, &t.PlannedMin,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}

	t.Complexity = domain.ComplexityTier(complexityStr)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &t, nil
}
