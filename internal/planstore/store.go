// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planstore indexes assembled render plans in a SQLite database so
// past programs can be listed and reloaded.
// Implements: prd016-plan (R4);
//
//	docs/ARCHITECTURE § Plan Store.
package planstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const dbFile = "plans.db"

// Store manages the plan index database.
type Store struct {
	db         *sql.DB
	plansDir   string
	maxResults int
}

// NewStore opens or creates the plan index at plansDir/plans.db, creating
// the schema if it does not exist (R4.1).
func NewStore(cfg types.StoreConfig) (*Store, error) {
	plansDir := cfg.PlansDir
	if plansDir == "" {
		plansDir = "plans"
	}
	if err := os.MkdirAll(plansDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating plans directory: %w", err)
	}

	dbPath := filepath.Join(plansDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening plan database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, plansDir: plansDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			title TEXT,
			class TEXT,
			fps INTEGER,
			scene_count INTEGER,
			duration_sec INTEGER,
			patterns TEXT,
			created_at TEXT,
			doc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put upserts one plan: the full document plus the indexed summary columns
// (R4.2). Re-storing the same plan id is idempotent.
func (s *Store) Put(ctx context.Context, p *types.RenderPlan) error {
	doc, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling plan %s: %w", p.ID, err)
	}

	patterns := make([]string, 0, len(p.Scenes))
	for _, sc := range p.Scenes {
		patterns = append(patterns, string(sc.Pattern))
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, title, class, fps, scene_count, duration_sec, patterns, created_at, doc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, class=excluded.class, fps=excluded.fps,
			scene_count=excluded.scene_count, duration_sec=excluded.duration_sec,
			patterns=excluded.patterns, created_at=excluded.created_at, doc=excluded.doc`,
		p.ID, p.Title, string(p.Class), p.FPS, len(p.Scenes),
		p.EstimatedTotalDurationSec, strings.Join(patterns, ","), p.CreatedAt, string(doc),
	)
	if err != nil {
		return fmt.Errorf("storing plan %s: %w", p.ID, err)
	}
	return nil
}

// Summary is one row of a plan listing (R4.3).
type Summary struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Class       string `json:"class" yaml:"class"`
	SceneCount  int    `json:"scene_count" yaml:"scene_count"`
	DurationSec int    `json:"duration_sec" yaml:"duration_sec"`
	Patterns    string `json:"patterns" yaml:"patterns"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
}

// List returns plan summaries, newest first.
func (s *Store) List(ctx context.Context, max int) ([]Summary, error) {
	if max <= 0 {
		max = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, class, scene_count, duration_sec, patterns, created_at
		 FROM plans ORDER BY created_at DESC LIMIT ?`, max)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Class, &sum.SceneCount,
			&sum.DurationSec, &sum.Patterns, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Get reloads one stored plan document by id. Props round-trip as generic
// YAML maps; the renderer consumes them by shape.
func (s *Store) Get(ctx context.Context, id string) (*types.RenderPlan, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM plans WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", id, err)
	}

	var p types.RenderPlan
	if err := yaml.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("parsing stored plan %s: %w", id, err)
	}
	return &p, nil
}
