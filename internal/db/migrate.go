package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_plans (
		id             TEXT PRIMARY KEY,
		short_id       TEXT NOT NULL DEFAULT '',
		name           TEXT NOT NULL,
		start_date     TEXT NOT NULL,
		exam_date      TEXT NOT NULL,
		weekly_minutes TEXT NOT NULL DEFAULT '[0,0,0,0,0,0,0]',
		weight_rules   TEXT NOT NULL DEFAULT '[]',
		status         TEXT NOT NULL DEFAULT 'active'
		               CHECK(status IN ('active','archived')),
		archived_at    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_study_plans_short_id ON study_plans(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS topics (
		id          TEXT PRIMARY KEY,
		plan_id     TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		block       TEXT NOT NULL DEFAULT '',
		complexity  TEXT NOT NULL DEFAULT 'medium'
		            CHECK(complexity IN ('low','medium','high')),
		priority    REAL NOT NULL DEFAULT 1.0,
		planned_min INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_topics_plan ON topics(plan_id)`,

	`CREATE TABLE IF NOT EXISTS topic_parts (
		topic_id   TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
		part_index INTEGER NOT NULL,
		title      TEXT NOT NULL,
		fraction   REAL NOT NULL,
		PRIMARY KEY (topic_id, part_index)
	)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		topic_id     TEXT REFERENCES topics(id) ON DELETE CASCADE,
		part_index   INTEGER,
		date         TEXT NOT NULL,
		minutes      INTEGER NOT NULL,
		kind         TEXT NOT NULL
		             CHECK(kind IN ('study','review','test','simulation')),
		review_stage INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','in_progress','completed','skipped')),
		label        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_sessions_plan_date ON study_sessions(plan_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_status ON study_sessions(status)`,

	`CREATE TABLE IF NOT EXISTS generation_runs (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		status       TEXT NOT NULL DEFAULT 'running'
		             CHECK(status IN ('running','succeeded','failed','cancelled')),
		diagnostics  TEXT NOT NULL DEFAULT '{}',
		failure_code TEXT NOT NULL DEFAULT '',
		failure_msg  TEXT NOT NULL DEFAULT '',
		started_at   TEXT NOT NULL,
		finished_at  TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_generation_runs_plan ON generation_runs(plan_id, started_at)`,
}
