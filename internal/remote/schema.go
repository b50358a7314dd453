package remote

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskdeck/internal/model"
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		domain TEXT NOT NULL DEFAULT '',
		figma_link TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'paused', 'completed', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS email_templates (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS code_components (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		code_json JSONB,
		preview_image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		language TEXT NOT NULL DEFAULT 'en',
		theme TEXT NOT NULL DEFAULT 'light',
		notifications JSONB NOT NULL DEFAULT '{}',
		custom_colors JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS report_templates (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		template_data JSONB NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Columns added after the first release. Older databases pick them up here.
var migrateStatements = []string{
	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS status TEXT CHECK (status IN ('todo', 'in-progress', 'done'))`,
	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS estimated_time INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS actual_time INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE code_components ADD COLUMN IF NOT EXISTS elementor_data JSONB`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_project_id ON accounts(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}

const seedSettings = `INSERT INTO settings (user_id, language, theme, notifications, custom_colors)
	SELECT $1::text, $2::text, $3::text, $4::jsonb, $5::jsonb
	WHERE NOT EXISTS (SELECT 1 FROM settings WHERE user_id = $1::text)`

const seedReportTemplate = `INSERT INTO report_templates (name, description, template_data, category, is_default, created_by)
	SELECT $1::text, $2::text, $3::jsonb, $4::text, TRUE, $5::text
	WHERE NOT EXISTS (SELECT 1 FROM report_templates WHERE name = $1::text AND is_default)`

// InitializeTables creates and migrates the schema and seeds the settings row
// and the default report templates. Every statement is guarded, so running
// it again on an initialized database changes nothing.
func (s *Store) InitializeTables(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range createStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return ParsePostgreSQLError(err, "create table", "")
			}
		}

		for _, stmt := range migrateStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return ParsePostgreSQLError(err, "migrate", "")
			}
		}

		defaults := model.DefaultSettings()
		if _, err := tx.ExecContext(ctx, seedSettings,
			defaults.UserID, defaults.Language, defaults.Theme,
			string(defaults.Notifications), string(defaults.CustomColors),
		); err != nil {
			return ParsePostgreSQLError(err, "seed", tableSettings)
		}

		for _, tmpl := range model.DefaultReportTemplates() {
			if _, err := tx.ExecContext(ctx, seedReportTemplate,
				tmpl.Name, tmpl.Description, string(tmpl.TemplateData), tmpl.Category, tmpl.CreatedBy,
			); err != nil {
				return ParsePostgreSQLError(err, "seed", tableReportTemplates)
			}
		}

		s.log.Info("tables initialized",
			"tables", len(createStatements),
			"migrations", len(migrateStatements),
		)
		return nil
	})
}

// SeedCounts reports how many default report templates and settings rows
// exist. Used to confirm that initialization did not duplicate seeds.
func (s *Store) SeedCounts(ctx context.Context) (templates, settings int, err error) {
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	if err := s.db.GetContext(ctx, &templates, "SELECT COUNT(*) FROM report_templates WHERE is_default"); err != nil {
		return 0, 0, fmt.Errorf("count default templates: %w", ParsePostgreSQLError(err, "count", tableReportTemplates))
	}
	if err := s.db.GetContext(ctx, &settings, "SELECT COUNT(*) FROM settings WHERE user_id = $1", model.DefaultUserID); err != nil {
		return 0, 0, fmt.Errorf("count settings: %w", ParsePostgreSQLError(err, "count", tableSettings))
	}
	return templates, settings, nil
}
