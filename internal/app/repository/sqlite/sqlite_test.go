package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/app/repository"
)

var recordColumns = []string{
	"id", "file_name", "duration", "language", "transcript",
	"translation", "segments", "error_message", "created_at",
}

func TestSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dao := NewWithDB(db)

	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO transcripts").
		WithArgs("talk.wav", 12.5, "fr", "bonjour", "hello", "[]", "", created).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := dao.Save(context.Background(), &repository.Record{
		FileName:    "talk.wav",
		Duration:    12.5,
		Language:    "fr",
		Transcript:  "bonjour",
		Translation: "hello",
		Segments:    "[]",
		CreatedAt:   created,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dao := NewWithDB(db)

	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM transcripts WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(3, "talk.wav", 12.5, "fr", "bonjour", "hello", `[{"speaker_label":"Speaker A"}]`, "", created))

	rec, err := dao.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID)
	assert.Equal(t, "talk.wav", rec.FileName)
	assert.Equal(t, "fr", rec.Language)
	assert.Equal(t, created, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dao := NewWithDB(db)

	mock.ExpectQuery("SELECT (.+) FROM transcripts WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err = dao.Get(context.Background(), 99)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dao := NewWithDB(db)

	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM transcripts ORDER BY created_at DESC").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(2, "b.mp3", 5.0, "en", "two", "two", "[]", "", created).
			AddRow(1, "a.mp3", 3.0, "en", "one", "one", "[]", "", created))

	records, err := dao.List(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, int64(1), records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
