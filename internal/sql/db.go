package sql

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/logr"
)

// max conns avail in a pgx pool
const defaultMaxConnections = 10

// maximum time spent waiting for the database to accept connections before
// giving up.
const connectMaxElapsedTime = 30 * time.Second

// DB provides access to the postgres db
type DB struct {
	*pgxpool.Pool // db connection pool
	logr.Logger
}

// New migrates the database to the latest migration version, and then
// constructs and returns a connection pool. The database tier may come up
// after the web tier, so connecting and migrating is retried with exponential
// backoff until the database is reachable.
func New(ctx context.Context, logger logr.Logger, connString string) (*DB, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectMaxElapsedTime

	err := backoff.RetryNotify(
		func() error { return migrate(ctx, logger, connString) },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Error(err, "connecting to database", "retry_in", next.String())
		},
	)
	if err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	// Bump max number of connections in a pool. By default pgx sets it to the
	// greater of 4 or the num of CPUs.
	connString, err = setDefaultMaxConnections(connString, defaultMaxConnections)
	if err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to database", "connstr", connString)

	return &DB{Pool: pool, Logger: logger}, nil
}

func (db *DB) Query(ctx context.Context, sql string, args ...any) pgx.Rows {
	rows, _ := db.Pool.Query(ctx, sql, args...)
	return rows
}

// Exec executes the sql with the given args. It assumes the command is a row
// affecting command and returns an error if the command does not affect any
// rows.
func (db *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	cmdTag, err := db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return pgconn.CommandTag{}, toError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgconn.CommandTag{}, internal.ErrResourceNotFound
	}
	return cmdTag, nil
}

func setDefaultMaxConnections(connString string, max int) (string, error) {
	// pg connection string can be either a URL or a DSN
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		u, err := url.Parse(connString)
		if err != nil {
			return "", fmt.Errorf("parsing connection string url: %w", err)
		}
		q := u.Query()
		q.Add("pool_max_conns", strconv.Itoa(max))
		u.RawQuery = q.Encode()
		return url.PathUnescape(u.String())
	} else if connString == "" {
		// presume empty DSN
		return fmt.Sprintf("pool_max_conns=%d", max), nil
	} else {
		// presume non-empty DSN
		return fmt.Sprintf("%s pool_max_conns=%d", connString, max), nil
	}
}
