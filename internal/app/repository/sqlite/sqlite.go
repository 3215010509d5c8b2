package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"voxi/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcripts (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name     TEXT NOT NULL,
	duration      REAL NOT NULL DEFAULT 0,
	language      TEXT NOT NULL DEFAULT 'unknown',
	transcript    TEXT NOT NULL DEFAULT '',
	translation   TEXT NOT NULL DEFAULT '',
	segments      TEXT NOT NULL DEFAULT '[]',
	error_message TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// DAO is the SQLite-backed TranscriptDAO used in single-node deployments.
type DAO struct {
	db *sql.DB
}

// New opens (and creates if needed) the SQLite database at dbPath.
func New(dbPath string) (*DAO, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	dao := NewWithDB(db)
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transcripts table: %w", err)
	}
	return dao, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *DAO {
	return &DAO{db: db}
}

func (d *DAO) Save(ctx context.Context, rec *repository.Record) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO transcripts (file_name, duration, language, transcript, translation, segments, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.FileName, rec.Duration, rec.Language, rec.Transcript, rec.Translation, rec.Segments, rec.ErrorMessage, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting transcript: %w", err)
	}
	return res.LastInsertId()
}

func (d *DAO) Get(ctx context.Context, id int64) (*repository.Record, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, file_name, duration, language, transcript, translation, segments, error_message, created_at
		 FROM transcripts WHERE id = ?`, id)

	var rec repository.Record
	err := row.Scan(&rec.ID, &rec.FileName, &rec.Duration, &rec.Language, &rec.Transcript,
		&rec.Translation, &rec.Segments, &rec.ErrorMessage, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transcript %d: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("querying transcript %d: %w", id, err)
	}
	return &rec, nil
}

func (d *DAO) List(ctx context.Context, limit, offset int) ([]repository.Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, file_name, duration, language, transcript, translation, segments, error_message, created_at
		 FROM transcripts ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	defer rows.Close()

	var records []repository.Record
	for rows.Next() {
		var rec repository.Record
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.Duration, &rec.Language, &rec.Transcript,
			&rec.Translation, &rec.Segments, &rec.ErrorMessage, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (d *DAO) Close() error {
	return d.db.Close()
}
