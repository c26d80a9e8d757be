package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Read environment to determine table prefix
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev" // Default to dev
	}

	var prefix string
	if env == "prod" {
		prefix = ""
	} else {
		prefix = env + "_"
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	// Drop all tables with environment-specific prefix, children first
	dropSQL := fmt.Sprintf(`
		DROP TABLE IF EXISTS %[1]stask_dependencies CASCADE;
		DROP TABLE IF EXISTS %[1]stask_versions CASCADE;
		DROP TABLE IF EXISTS %[1]stasks CASCADE;
		DROP TABLE IF EXISTS %[1]sfeature_diagrams CASCADE;
		DROP TABLE IF EXISTS %[1]sfeature_versions CASCADE;
		DROP TABLE IF EXISTS %[1]sfeatures CASCADE;
		DROP TABLE IF EXISTS %[1]sdiagram_versions CASCADE;
		DROP TABLE IF EXISTS %[1]sdiagrams CASCADE;
		DROP TABLE IF EXISTS %[1]sdocument_versions CASCADE;
		DROP TABLE IF EXISTS %[1]sdocuments CASCADE;
		DROP TABLE IF EXISTS %[1]sideas CASCADE;
	`, prefix)

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", prefix)
}
