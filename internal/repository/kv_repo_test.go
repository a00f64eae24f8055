package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockKV(t *testing.T) (*KVSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewKVSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestKVSQLite_Get(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		mockExpect     func(sqlmock.Sqlmock)
		wantValue      string
		wantOK         bool
		wantErr        bool
		errContainsStr string
	}{
		{
			name: "found",
			key:  KeyToken,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
					WithArgs(KeyToken).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("secret"))
			},
			wantValue: "secret",
			wantOK:    true,
		},
		{
			name: "empty value is still present",
			key:  KeyApplianceID,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
					WithArgs(KeyApplianceID).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(""))
			},
			wantValue: "",
			wantOK:    true,
		},
		{
			name: "not found (ErrNoRows)",
			key:  KeyLastSetTemp,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
					WithArgs(KeyLastSetTemp).
					WillReturnError(sql.ErrNoRows)
			},
			wantOK: false,
		},
		{
			name: "query error",
			key:  KeyToken,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
					WithArgs(KeyToken).
					WillReturnError(errors.New("disk I/O error"))
			},
			wantErr:        true,
			errContainsStr: "select config",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockKV(t)
			defer cleanup()

			tt.mockExpect(mock)

			v, ok, err := repo.Get(context.Background(), tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.wantValue || ok != tt.wantOK {
				t.Fatalf("Get(%q) = (%q, %v); want (%q, %v)", tt.key, v, ok, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestKVSQLite_Set(t *testing.T) {
	repo, mock, cleanup := newMockKV(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs(KeyApplianceID, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), KeyApplianceID, ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestKVSQLite_Set_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockKV(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs(KeyToken, "abc").
		WillReturnError(errors.New("database is locked"))

	err := repo.Set(context.Background(), KeyToken, "abc")
	if err == nil || !strings.Contains(err.Error(), "upsert config") {
		t.Fatalf("expected wrapped upsert error, got %v", err)
	}
}

func TestKVSQLite_SetMany_SingleTransactionInKeyOrder(t *testing.T) {
	repo, mock, cleanup := newMockKV(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs(KeyLastSetTemp, "28").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs(KeyLastSetTimestamp, "1700000000").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetMany(context.Background(), map[string]string{
		KeyLastSetTimestamp: "1700000000",
		KeyLastSetTemp:      "28",
	})
	if err != nil {
		t.Fatalf("SetMany: %v", err)
	}
}

func TestKVSQLite_SetMany_RollsBackOnError(t *testing.T) {
	repo, mock, cleanup := newMockKV(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs(KeyLastSetTemp, "30").
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := repo.SetMany(context.Background(), map[string]string{
		KeyLastSetTemp:      "30",
		KeyLastSetTimestamp: "1700000000",
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}
