package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"voxi/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcripts (
	id            BIGSERIAL PRIMARY KEY,
	file_name     TEXT NOT NULL,
	duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
	language      TEXT NOT NULL DEFAULT 'unknown',
	transcript    TEXT NOT NULL DEFAULT '',
	translation   TEXT NOT NULL DEFAULT '',
	segments      JSONB NOT NULL DEFAULT '[]',
	error_message TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// DAO is the PostgreSQL-backed TranscriptDAO for shared deployments.
type DAO struct {
	db *sql.DB
}

// Options are the PostgreSQL connection parameters.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// New connects to PostgreSQL and ensures the schema exists.
func New(opts Options) (*DAO, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		opts.Host, opts.Port, opts.User, opts.Password, opts.Database)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transcripts table: %w", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *DAO {
	return &DAO{db: db}
}

func (d *DAO) Save(ctx context.Context, rec *repository.Record) (int64, error) {
	var id int64
	err := d.db.QueryRowContext(ctx,
		`INSERT INTO transcripts (file_name, duration, language, transcript, translation, segments, error_message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		rec.FileName, rec.Duration, rec.Language, rec.Transcript, rec.Translation, rec.Segments, rec.ErrorMessage, rec.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting transcript: %w", err)
	}
	return id, nil
}

func (d *DAO) Get(ctx context.Context, id int64) (*repository.Record, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, file_name, duration, language, transcript, translation, segments, error_message, created_at
		 FROM transcripts WHERE id = $1`, id)

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
		 FROM transcripts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
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
