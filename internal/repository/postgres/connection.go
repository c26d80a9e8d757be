package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
)

// RepositoryConfig holds shared dependencies for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names so dev, test, and prod
// data can share one database
type TableNames struct {
	Ideas            string
	Documents        string
	DocumentVersions string
	Diagrams         string
	DiagramVersions  string
	Features         string
	FeatureVersions  string
	FeatureDiagrams  string
	Tasks            string
	TaskVersions     string
	TaskDependencies string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Ideas:            prefix + "ideas",
		Documents:        prefix + "documents",
		DocumentVersions: prefix + "document_versions",
		Diagrams:         prefix + "diagrams",
		DiagramVersions:  prefix + "diagram_versions",
		Features:         prefix + "features",
		FeatureVersions:  prefix + "feature_versions",
		FeatureDiagrams:  prefix + "feature_diagrams",
		Tasks:            prefix + "tasks",
		TaskVersions:     prefix + "task_versions",
		TaskDependencies: prefix + "task_dependencies",
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// When the connection targets a PgBouncer transaction pooler (port 6543 on
// Supabase), prepared statements break with "prepared statement already
// exists". QueryExecModeCacheDescribe keeps the extended protocol (needed
// for JSONB encoding of analysis results) while staying pooler-compatible.
// An explicit default_query_exec_mode in the connection string wins.
//
// Interpolating table prefixes with string formatting is safe alongside
// prepared statements: the SQL text is fixed before it reaches the server,
// so each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction from the context when one is open,
// otherwise the pool. Repositories call this on every query so they join
// an ambient transaction transparently.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
