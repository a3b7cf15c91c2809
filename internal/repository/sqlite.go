package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/mycelium/internal/models"
)

const maxListLimit = 500

// createdAtLayout is fixed width so created_at orders correctly as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			image_size INTEGER NOT NULL,
			transcript TEXT NOT NULL,
			ai_status TEXT NOT NULL,
			ai_error TEXT,
			ai_latency_ms INTEGER NOT NULL,
			severity_score INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
		CREATE INDEX IF NOT EXISTS idx_analyses_ai_status ON analyses(ai_status);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Add(ctx context.Context, r *models.AnalysisRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, created_at, mime_type, image_size, transcript, ai_status, ai_error, ai_latency_ms, severity_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.CreatedAt.UTC().Format(createdAtLayout),
		r.MimeType,
		r.ImageSize,
		r.Transcript,
		string(r.AIStatus),
		r.AIError,
		r.AILatencyMS,
		r.SeverityScore,
	)
	if err != nil {
		return fmt.Errorf("error inserting analysis %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, mime_type, image_size, transcript, ai_status, ai_error, ai_latency_ms, severity_score
		FROM analyses WHERE id = ?`, id)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching analysis %s: %w", id, err)
	}
	return r, nil
}

func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]models.AnalysisRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.AIStatus != nil {
		where = append(where, "ai_status = ?")
		args = append(args, string(*opts.AIStatus))
	}

	query := `SELECT id, created_at, mime_type, image_size, transcript, ai_status, ai_error, ai_latency_ms, severity_score FROM analyses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"

	limit := opts.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing analyses: %w", err)
	}
	defer rows.Close()

	records := []models.AnalysisRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning analysis: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*models.AnalysisRecord, error) {
	var (
		r         models.AnalysisRecord
		createdAt string
		status    string
		aiError   sql.NullString
	)
	if err := sc.Scan(&r.ID, &createdAt, &r.MimeType, &r.ImageSize, &r.Transcript, &status, &aiError, &r.AILatencyMS, &r.SeverityScore); err != nil {
		return nil, err
	}

	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	r.CreatedAt = t
	r.AIStatus = models.AIStatus(status)
	r.AIError = aiError.String
	return &r, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
