// Package postgres is the durable implementation of domain.Store. All
// counter and usage updates are single conditional statements, so the
// atomicity the admission and promotion workflows rely on holds without
// elevated isolation levels.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/dineflow/internal/domain"
)

//go:embed schema.sql
var schema string

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so
// every repository works both standalone and inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	// pool is nil on transaction-scoped stores; their db is the pgx.Tx.
	pool *pgxpool.Pool
	db   querier

	tenants      *TenantRepo
	orders       *OrderRepo
	promotions   *PromotionRepo
	tables       *TableRepo
	reservations *ReservationRepo
	counters     *CounterRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	s := newStore(pool)
	s.pool = pool

	return s, nil
}

func newStore(db querier) *Store {
	return &Store{
		db:           db,
		tenants:      NewTenantRepo(db),
		orders:       NewOrderRepo(db),
		promotions:   NewPromotionRepo(db),
		tables:       NewTableRepo(db),
		reservations: NewReservationRepo(db),
		counters:     NewCounterRepo(db),
	}
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies the embedded schema. Every statement is idempotent, so
// running it on boot against an existing database is safe.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}

	return nil
}

func (s *Store) Tenants() domain.TenantRepository           { return s.tenants }
func (s *Store) Orders() domain.OrderRepository             { return s.orders }
func (s *Store) Promotions() domain.PromotionRepository     { return s.promotions }
func (s *Store) Tables() domain.TableRepository             { return s.tables }
func (s *Store) Reservations() domain.ReservationRepository { return s.reservations }
func (s *Store) Counters() domain.CounterRepository         { return s.counters }

// InTx runs fn inside one database transaction. Lock and serialization
// conflicts surface as domain.ErrConcurrencyConflict so the booking
// retry loop can distinguish them from business rejections. A nested
// call joins the enclosing transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.InTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newStore(tx)); err != nil {
		return mapConcurrencyError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("postgres.InTx: commit: %w", err))
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapConcurrencyError folds serialization failures (40001) and deadlocks
// (40P01) into the retryable sentinel.
func mapConcurrencyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return fmt.Errorf("postgres.InTx: %v: %w", pgErr.Code, domain.ErrConcurrencyConflict)
	}

	return err
}
