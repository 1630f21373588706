package stats

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGIncrement_Upsert(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO parse_stats").
		WithArgs("user-1", 100, 50, 150).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	if err := store.Increment(context.Background(), "user-1", 100, 50, 150); err != nil {
		t.Fatalf("Increment returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGGet_ExistingRow(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "resumes_parsed", "prompt_tokens", "completion_tokens", "total_tokens", "updated_at"}).
		AddRow("user-1", int64(3), int64(300), int64(150), int64(450), updated)
	mock.ExpectQuery("SELECT user_id, resumes_parsed").
		WithArgs("user-1").
		WillReturnRows(rows)

	store := NewPGStore(db)
	got, err := store.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ResumesParsed != 3 || got.TotalTokens != 450 {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGGet_MissingRowReturnsZero(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, resumes_parsed").
		WithArgs("user-2").
		WillReturnError(sql.ErrNoRows)

	store := NewPGStore(db)
	got, err := store.Get(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != "user-2" || got.ResumesParsed != 0 || got.TotalTokens != 0 {
		t.Fatalf("got %+v, want zero row", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
