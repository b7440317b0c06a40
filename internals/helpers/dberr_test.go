package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := fmt.Errorf("create bill: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(err) {
		t.Fatal("pgconn 23505 not detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation treated as unique violation")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("pq 23505 not detected")
	}
}

func TestIsUniqueViolationSqliteMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: cases.case_number")
	if !IsUniqueViolation(err) {
		t.Fatal("sqlite message not detected")
	}
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatal("nil treated as violation")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatal("unrelated error treated as violation")
	}
}
