// Package memory implements domain.Store entirely in process memory.
// It backs the engine's workflow and property tests and the demo mode of
// the service binary. Transactions are serialized under one mutex and run
// against a copy-on-write snapshot, so a failed workflow rolls back by
// discarding the snapshot.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/domain"
)

type counterKey struct {
	tenantID uuid.UUID
	kind     string
	value    string
}

type state struct {
	tenants      map[uuid.UUID]*domain.Tenant
	orders       map[uuid.UUID]*domain.Order
	promotions   map[uuid.UUID]*domain.Promotion
	tables       map[uuid.UUID]*domain.Table
	reservations map[uuid.UUID]*domain.Reservation
	counters     map[counterKey]int
}

func newState() *state {
	return &state{
		tenants:      make(map[uuid.UUID]*domain.Tenant),
		orders:       make(map[uuid.UUID]*domain.Order),
		promotions:   make(map[uuid.UUID]*domain.Promotion),
		tables:       make(map[uuid.UUID]*domain.Table),
		reservations: make(map[uuid.UUID]*domain.Reservation),
		counters:     make(map[counterKey]int),
	}
}

// clone copies the maps. Entities themselves are never mutated in place
// (repositories store and return copies), so pointer sharing between the
// snapshot and the live state is safe.
func (st *state) clone() *state {
	c := &state{
		tenants:      make(map[uuid.UUID]*domain.Tenant, len(st.tenants)),
		orders:       make(map[uuid.UUID]*domain.Order, len(st.orders)),
		promotions:   make(map[uuid.UUID]*domain.Promotion, len(st.promotions)),
		tables:       make(map[uuid.UUID]*domain.Table, len(st.tables)),
		reservations: make(map[uuid.UUID]*domain.Reservation, len(st.reservations)),
		counters:     make(map[counterKey]int, len(st.counters)),
	}
	for k, v := range st.tenants {
		c.tenants[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.promotions {
		c.promotions[k] = v
	}
	for k, v := range st.tables {
		c.tables[k] = v
	}
	for k, v := range st.reservations {
		c.reservations[k] = v
	}
	for k, v := range st.counters {
		c.counters[k] = v
	}
	return c
}

// runner hands repository operations a state to work on. The root store
// serializes under its mutex; a transaction store works on its snapshot
// directly because InTx already holds the lock.
type runner interface {
	run(fn func(st *state) error) error
}

// Store is the root, thread-safe store.
type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) run(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) Tenants() domain.TenantRepository           { return &tenantRepo{s} }
func (s *Store) Orders() domain.OrderRepository             { return &orderRepo{s} }
func (s *Store) Promotions() domain.PromotionRepository     { return &promotionRepo{s} }
func (s *Store) Tables() domain.TableRepository             { return &tableRepo{s} }
func (s *Store) Reservations() domain.ReservationRepository { return &reservationRepo{s} }
func (s *Store) Counters() domain.CounterRepository         { return &counterRepo{s} }

// InTx runs fn against a snapshot of the store. The snapshot replaces the
// live state only when fn succeeds; concurrent transactions are fully
// serialized, which trivially satisfies the linearizability the counters
// require.
func (s *Store) InTx(_ context.Context, fn func(tx domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&txStore{state: snapshot}); err != nil {
		return err
	}
	s.state = snapshot
	return nil
}

// txStore is the transaction-scoped view handed to InTx callbacks.
type txStore struct {
	state *state
}

func (t *txStore) run(fn func(st *state) error) error { return fn(t.state) }

func (t *txStore) Tenants() domain.TenantRepository           { return &tenantRepo{t} }
func (t *txStore) Orders() domain.OrderRepository             { return &orderRepo{t} }
func (t *txStore) Promotions() domain.PromotionRepository     { return &promotionRepo{t} }
func (t *txStore) Tables() domain.TableRepository             { return &tableRepo{t} }
func (t *txStore) Reservations() domain.ReservationRepository { return &reservationRepo{t} }
func (t *txStore) Counters() domain.CounterRepository         { return &counterRepo{t} }

// Nested InTx joins the enclosing transaction.
func (t *txStore) InTx(_ context.Context, fn func(tx domain.Store) error) error {
	return fn(t)
}
