package sql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kvboard/kvboard/internal"
)

// postgres error code for a unique constraint violation
const uniqueViolation = "23505"

// toError translates a postgres error into a domain error.
func toError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return internal.ErrResourceNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return internal.ErrResourceAlreadyExists
		}
	}
	return err
}
