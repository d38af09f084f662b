// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func withMockOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	orig := sqlOpenFunc
	sqlOpenFunc = func(driverName, dsn string) (*sql.DB, error) { return dbMock, nil }
	t.Cleanup(func() {
		sqlOpenFunc = orig
		_ = dbMock.Close()
	})
	return mock
}

func TestRunDBMaintenance_Sqlite(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("VACUUM").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PRAGMA wal_checkpoint\\(").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(sqlmock.NewRows([]string{"integrity_check"}).AddRow("ok"))

	if err := RunDBMaintenance("sqlite", "whatever"); err != nil {
		t.Fatalf("expected RunDBMaintenance success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunDBMaintenance_SqliteCorrupt(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnError(errors.New("not supported"))
	mock.ExpectExec("VACUUM").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PRAGMA wal_checkpoint\\(").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(sqlmock.NewRows([]string{"integrity_check"}).AddRow("malformed"))

	if err := RunDBMaintenance("sqlite", "whatever"); err == nil {
		t.Fatalf("expected integrity failure")
	}
}

func TestRunDBMaintenance_PostgresAndMySQL(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectExec("VACUUM ANALYZE").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := RunDBMaintenance("postgres", "whatever"); err != nil {
		t.Fatalf("postgres: %v", err)
	}

	mock = withMockOpen(t)
	mock.ExpectExec("OPTIMIZE TABLE credentials").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("OPTIMIZE TABLE activity").WillReturnError(errors.New("locked"))
	if err := RunDBMaintenance("mysql", "whatever"); err == nil {
		t.Fatalf("expected mysql error")
	}
}

func TestRunDBMaintenance_Unsupported(t *testing.T) {
	if err := RunDBMaintenance("oracle", "x"); err == nil {
		t.Fatalf("expected error")
	}
}
