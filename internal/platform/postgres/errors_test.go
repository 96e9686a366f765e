package postgres_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/carecamp/carecamp-api/internal/platform/postgres"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: "users_email_key",
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, m.err
}

func (m mockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), expected: store.ErrDuplicate},
		{name: "check violation", err: newPgError("23514"), expected: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), expected: store.ErrInvalidEntity},
		{name: "invalid cast", err: newPgError("22P02"), expected: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tc.err), tc.expected)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		err := errors.New("boom")
		assert.Same(t, err, postgres.MapError(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.False(t, postgres.IsUniqueViolation(nil))
	assert.False(t, postgres.IsUniqueViolation(errors.New("generic error")))
	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := postgres.MapUniqueViolation(newPgError("23505"), store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = postgres.MapUniqueViolation(sql.ErrNoRows, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrEmailExists)
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	n, err := postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrCampNotFound)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrCampNotFound)
	assert.ErrorIs(t, err, store.ErrCampNotFound)

	_, err = postgres.CheckRowsAffected(mockResult{err: errors.New("driver")}, store.ErrCampNotFound)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrCampNotFound)

	_, err = postgres.CheckRowsAffected(nil, store.ErrCampNotFound)
	assert.Error(t, err)
}
