package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// ErrUnavailable is returned while no live connection exists. Request
// paths get this instead of hanging on connection establishment.
var ErrUnavailable = errors.New("store unavailable")

// reconnectDelay is the fixed backoff between connection attempts.
const reconnectDelay = 5 * time.Second

// State of the store connection. Only the background retry loop
// transitions it; request handlers read snapshots.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Store owns the pgx pool and its lifecycle. Connection establishment
// is retried indefinitely with a fixed backoff rather than failing
// fast, so the process comes up even when the database is down.
type Store struct {
	dsn          string
	log          *slog.Logger
	afterConnect func(ctx context.Context, pool *pgxpool.Pool) error

	pool  atomic.Pointer[pgxpool.Pool]
	state atomic.Int32
}

// Open starts the background connect loop and returns immediately.
// afterConnect, if non-nil, runs once per successful connection before
// the pool is published (schema setup lives there); its failure counts
// as a failed attempt.
func Open(ctx context.Context, dsn string, log *slog.Logger, afterConnect func(context.Context, *pgxpool.Pool) error) *Store {
	s := &Store{dsn: dsn, log: log, afterConnect: afterConnect}
	go s.connectLoop(ctx)
	return s
}

func (s *Store) connectLoop(ctx context.Context) {
	s.state.Store(int32(StateConnecting))
	err := retry.Do(ctx, retry.NewConstant(reconnectDelay), func(ctx context.Context) error {
		pool, err := connect(ctx, s.dsn)
		if err == nil && s.afterConnect != nil {
			if err = s.afterConnect(ctx, pool); err != nil {
				pool.Close()
			}
		}
		if err != nil {
			s.log.Error("store connection failed, retrying",
				"error", err, "retry_in", reconnectDelay.String())
			return retry.RetryableError(err)
		}
		s.pool.Store(pool)
		s.state.Store(int32(StateConnected))
		s.log.Info("store connected")
		return nil
	})
	if err != nil {
		s.state.Store(int32(StateDisconnected))
	}
}

// connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	// Reasonable defaults
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Pool returns the live pool snapshot, or ErrUnavailable while disconnected.
func (s *Store) Pool() (*pgxpool.Pool, error) {
	if p := s.pool.Load(); p != nil {
		return p, nil
	}
	return nil, ErrUnavailable
}

// State returns the current connection state.
func (s *Store) State() State { return State(s.state.Load()) }

// Connected reports whether a live connection has been established.
func (s *Store) Connected() bool { return s.State() == StateConnected }

func (s *Store) Close() {
	if p := s.pool.Swap(nil); p != nil {
		p.Close()
	}
	s.state.Store(int32(StateDisconnected))
}
