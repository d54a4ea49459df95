/*
Package sql implements persistent storage using the postgres database.
*/
package sql

import (
	"github.com/jackc/pgx/v5"
)

// CollectRows collects rows into a slice of T, translating any error into a
// domain error.
func CollectRows[T any](rows pgx.Rows, fn pgx.RowToFunc[T]) ([]T, error) {
	items, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, toError(err)
	}
	return items, nil
}
