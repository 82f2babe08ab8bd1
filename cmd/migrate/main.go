package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations
var migrationFiles embed.FS

// Applies the embedded SQL migrations in lexical order, tracking what has
// already run in a schema_migrations table. "migrate down" rolls back the
// most recent one.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("unknown direction %q (want up or down)", direction)
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		log.Fatal("DB_ADDR is not set")
	}

	db, err := sql.Open("postgres", addr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := run(db, direction); err != nil {
		log.Fatal(err)
	}
}

func run(db *sql.DB, direction string) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	if direction == "down" {
		return rollbackLast(db, applied)
	}

	versions, err := listVersions()
	if err != nil {
		return err
	}

	for _, v := range versions {
		if applied[v] {
			continue
		}
		if err := apply(db, v, "up", `INSERT INTO schema_migrations (version) VALUES ($1)`); err != nil {
			return err
		}
		log.Printf("applied %s", v)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func listVersions() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	var versions []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			versions = append(versions, strings.TrimSuffix(e.Name(), ".up.sql"))
		}
	}
	sort.Strings(versions)
	return versions, nil
}

func rollbackLast(db *sql.DB, applied map[string]bool) error {
	var last string
	for v := range applied {
		if v > last {
			last = v
		}
	}
	if last == "" {
		log.Println("nothing to roll back")
		return nil
	}

	if err := apply(db, last, "down", `DELETE FROM schema_migrations WHERE version = $1`); err != nil {
		return err
	}
	log.Printf("rolled back %s", last)
	return nil
}

func apply(db *sql.DB, version, direction, record string) error {
	content, err := migrationFiles.ReadFile(fmt.Sprintf("migrations/%s.%s.sql", version, direction))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", version, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("apply migration %s: %w", version, err)
	}
	if _, err := tx.Exec(record, version); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	return tx.Commit()
}
