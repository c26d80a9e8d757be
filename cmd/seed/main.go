package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/config"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/models"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/domain/repositories"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ideaRepo := postgres.NewIdeaRepository(repoConfig)

	if err := seedDemoIdeas(ctx, ideaRepo); err != nil {
		log.Fatalf("Failed to seed demo ideas: %v", err)
	}

	log.Println("Seeding complete")
}

// dropAllTables removes every table this service owns, children first
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	ordered := []string{
		tables.TaskDependencies,
		tables.TaskVersions,
		tables.Tasks,
		tables.FeatureDiagrams,
		tables.FeatureVersions,
		tables.Features,
		tables.DiagramVersions,
		tables.Diagrams,
		tables.DocumentVersions,
		tables.Documents,
		tables.Ideas,
	}
	for _, table := range ordered {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// seedDemoIdeas inserts one draft idea and one analyzed, confirmed idea,
// enough to exercise document and diagram generation by hand.
func seedDemoIdeas(ctx context.Context, ideaRepo repositories.IdeaRepository) error {
	draft := &models.Idea{
		RawText: "A mobile app that helps remote teams run asynchronous daily standups with automatic summaries.",
		Status:  models.IdeaStatusDraft,
	}
	if err := ideaRepo.Create(ctx, draft); err != nil {
		return fmt.Errorf("create draft idea: %w", err)
	}
	log.Printf("Created draft idea %s", draft.ID)

	confirmed := &models.Idea{
		RawText: "A marketplace where independent bakers can list daily batches and customers reserve pickup slots.",
		Status:  models.IdeaStatusDraft,
	}
	if err := ideaRepo.Create(ctx, confirmed); err != nil {
		return fmt.Errorf("create idea: %w", err)
	}

	analysis := &models.IdeaAnalysis{
		MissingDetails:           []string{"Payment and refund flow", "Geographic scope for launch"},
		ComplementarySuggestions: []string{"Waitlists for sold-out batches", "Baker rating system"},
		ConstraintsAndRisks:      []string{"Food safety regulations vary by region"},
		ClarifyingQuestions:      []string{"Do bakers set their own pickup windows?"},
	}
	status := models.IdeaStatusConfirmed
	if _, err := ideaRepo.Update(ctx, confirmed.ID, &repositories.IdeaUpdate{
		AnalysisResult: analysis,
		Status:         &status,
	}); err != nil {
		return fmt.Errorf("confirm idea: %w", err)
	}
	log.Printf("Created confirmed idea %s", confirmed.ID)

	return nil
}
