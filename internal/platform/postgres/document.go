package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carecamp/carecamp-api/internal/store"
)

// Table names. Each table holds one JSON document per row, keyed by the
// document's hex object ID.
const (
	usersTable         = "users"
	campsTable         = "camps"
	registrationsTable = "registrations"
	feedbackTable      = "feedback"
)

// withTimeout bounds a single store operation. A zero timeout leaves ctx unchanged.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// encodeDoc renders v as the JSON text stored in a doc column.
func encodeDoc(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(raw), nil
}

// queryDocs runs a query selecting a single doc column and decodes every row.
// The result is never nil.
func queryDocs[T any](ctx context.Context, db store.DBTX, query string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	results := make([]*T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, MapError(err)
		}

		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		results = append(results, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return results, nil
}

// queryDoc decodes the doc column of the single row a query returns.
func queryDoc[T any](ctx context.Context, db store.DBTX, query string, args ...any) (*T, error) {
	var raw []byte
	if err := db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, MapError(err)
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &item, nil
}

// patchDocument merges patch into the first row of table matched by where and
// reports how many rows matched and changed. The containment check runs
// against the locked row, so a conditional patch applied concurrently changes
// the row at most once. where uses placeholders $1..$len(args).
func patchDocument(
	ctx context.Context,
	db store.DBTX,
	table, where string,
	patch map[string]interface{},
	args ...any,
) (*store.UpdateResult, error) {
	doc, err := encodeDoc(patch)
	if err != nil {
		return nil, err
	}

	p := len(args) + 1
	query := fmt.Sprintf(`
		WITH target AS (
			SELECT id FROM %[1]s WHERE %[2]s ORDER BY id LIMIT 1
		), patched AS (
			UPDATE %[1]s AS t
			SET doc = t.doc || $%[3]d::jsonb
			FROM target
			WHERE t.id = target.id AND NOT (t.doc @> $%[3]d::jsonb)
			RETURNING t.id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM patched)`,
		table, where, p)

	var res store.UpdateResult
	if err := db.QueryRowContext(ctx, query, append(args, doc)...).Scan(&res.MatchedCount, &res.ModifiedCount); err != nil {
		return nil, MapError(err)
	}
	return &res, nil
}

// deleteByID removes the row with the given id, returning notFound when absent.
func deleteByID(ctx context.Context, db store.DBTX, table, id string, notFound error) (*store.DeleteResult, error) {
	result, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return nil, MapError(err)
	}

	n, err := CheckRowsAffected(result, notFound)
	if err != nil {
		return nil, err
	}
	return &store.DeleteResult{DeletedCount: n}, nil
}
