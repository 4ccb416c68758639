package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/devlink-api/internal/store"
)

// scanDocument decodes the single JSONB column of row into dst. notFound
// is returned when row is empty.
func scanDocument(row *sql.Row, dst any, notFound error) error {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return MapError(err)
	}
	return decodeDocument(raw, dst)
}

func decodeDocument(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// queryDocuments runs query and decodes the JSONB column of every row.
func queryDocuments[T any](ctx context.Context, db store.DBTX, query string) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := []*T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, MapError(err)
		}
		v := new(T)
		if err := decodeDocument(raw, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}
