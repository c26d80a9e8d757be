package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates all tables and indexes if they do not exist yet.
// Statements are idempotent so this runs at every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, prefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Ideas + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID,
			raw_text TEXT NOT NULL,
			refined_text TEXT,
			status TEXT NOT NULL DEFAULT 'draft',
			analysis_result JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			idea_id UUID NOT NULL REFERENCES ` + tables.Ideas + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(idea_id, type)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.DocumentVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			document_id UUID NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			content TEXT NOT NULL,
			changelog TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(document_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Diagrams + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			idea_id UUID NOT NULL REFERENCES ` + tables.Ideas + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			mermaid_code TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.DiagramVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			diagram_id UUID NOT NULL REFERENCES ` + tables.Diagrams + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			mermaid_code TEXT NOT NULL,
			changelog TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(diagram_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Features + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			idea_id UUID NOT NULL REFERENCES ` + tables.Ideas + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'manual',
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FeatureVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			feature_id UUID NOT NULL REFERENCES ` + tables.Features + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			changelog TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(feature_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FeatureDiagrams + ` (
			feature_id UUID NOT NULL REFERENCES ` + tables.Features + `(id) ON DELETE CASCADE,
			diagram_id UUID NOT NULL REFERENCES ` + tables.Diagrams + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (feature_id, diagram_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Tasks + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			feature_id UUID NOT NULL REFERENCES ` + tables.Features + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'planned',
			priority TEXT NOT NULL DEFAULT 'medium',
			estimated_effort TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.TaskVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			task_id UUID NOT NULL REFERENCES ` + tables.Tasks + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			changelog TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(task_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.TaskDependencies + ` (
			task_id UUID NOT NULL REFERENCES ` + tables.Tasks + `(id) ON DELETE CASCADE,
			depends_on_id UUID NOT NULL REFERENCES ` + tables.Tasks + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (task_id, depends_on_id),
			CHECK (task_id <> depends_on_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `documents_idea ON ` + tables.Documents + `(idea_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `document_versions_doc ON ` + tables.DocumentVersions + `(document_id, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `diagrams_idea ON ` + tables.Diagrams + `(idea_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `diagram_versions_diagram ON ` + tables.DiagramVersions + `(diagram_id, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `features_idea ON ` + tables.Features + `(idea_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `feature_versions_feature ON ` + tables.FeatureVersions + `(feature_id, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `tasks_feature ON ` + tables.Tasks + `(feature_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `task_versions_task ON ` + tables.TaskVersions + `(task_id, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `task_dependencies_dep ON ` + tables.TaskDependencies + `(depends_on_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
