// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"reviewscraper/internal/model"
)

// SQLiteWriter writes reviews and run metadata to a SQLite database, one row
// per review plus one row per run.
type SQLiteWriter struct {
	db *sql.DB
}

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	reviewer_name TEXT,
	rating REAL,
	source TEXT,
	company TEXT,
	verified INTEGER,
	helpful_count INTEGER,
	reviewer_role TEXT,
	company_size TEXT,
	FOREIGN KEY (run_id) REFERENCES runs (id)
)`

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	sources TEXT NOT NULL,
	total_reviews INTEGER NOT NULL,
	scraped_at TEXT NOT NULL,
	scraper_version TEXT NOT NULL
)`

// NewSQLiteWriter opens (or creates) the database and ensures the schema.
func NewSQLiteWriter(databasePath string) (*SQLiteWriter, error) {
	if dir := filepath.Dir(databasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", databasePath+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{createRunsTable, createReviewsTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &SQLiteWriter{db: db}, nil
}

// Write inserts the run and its reviews in a single transaction.
func (w *SQLiteWriter) Write(result *model.RunResult) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	meta := result.Metadata
	res, err := tx.Exec(
		`INSERT INTO runs (company, start_date, end_date, sources, total_reviews, scraped_at, scraper_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.Company, meta.StartDate, meta.EndDate, strings.Join(meta.Sources, ","),
		meta.TotalReviews, meta.ScrapedAt, meta.ScraperVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to resolve run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO reviews (run_id, title, description, date, reviewer_name, rating, source, company,
		                      verified, helpful_count, reviewer_role, company_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, review := range result.Reviews {
		_, err := stmt.Exec(
			runID,
			review.Title,
			review.Description,
			review.Date,
			nullString(review.ReviewerName),
			nullFloat(review.Rating),
			nullString(review.Source),
			nullString(review.Company),
			nullBool(review.Verified),
			nullInt(review.HelpfulCount),
			nullString(review.ReviewerRole),
			nullString(review.CompanySize),
		)
		if err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
	}

	return tx.Commit()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullBool(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}
