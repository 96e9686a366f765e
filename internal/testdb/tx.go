package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

// WithTx runs fn inside a transaction that is rolled back afterwards, so the
// test leaves no rows behind. *sql.Tx satisfies store.DBTX, so stores can be
// built directly on tx.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			// ALLOW-PANIC
			panic(r)
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
