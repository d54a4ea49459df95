package pair

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/sql"
)

// pgdb is a database of pairs on postgres
type pgdb struct {
	*sql.DB
}

// set inserts the pair, or, if a pair with the same key exists, overwrites
// its value. The upsert is atomic: concurrent sets of the same key cannot
// produce a duplicate-key failure.
func (db *pgdb) set(ctx context.Context, key, value string) error {
	_, err := db.Exec(ctx, `
INSERT INTO pairs (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`, key, value)
	return err
}

// list returns every pair, ordered by insertion.
func (db *pgdb) list(ctx context.Context) ([]Pair, error) {
	rows := db.Query(ctx, `SELECT key, value FROM pairs ORDER BY seq`)
	return sql.CollectRows(rows, pgx.RowToStructByName[Pair])
}

// delete removes the pair with the given key; removing an absent key is not
// an error.
func (db *pgdb) delete(ctx context.Context, key string) error {
	_, err := db.Exec(ctx, `DELETE FROM pairs WHERE key = $1`, key)
	if errors.Is(err, internal.ErrResourceNotFound) {
		return nil
	}
	return err
}

func (db *pgdb) ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
