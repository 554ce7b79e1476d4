package booking

import (
	"errors"
	"time"

	"github.com/dineflow/dineflow/internal/config"
	"github.com/dineflow/dineflow/internal/domain"
)

// ErrInvalidInput marks a request payload that failed engine-side
// validation.
var ErrInvalidInput = errors.New("booking: invalid input")

// Service composes the admission controller, order sequencer, promotion
// ledger and table allocator under one transaction boundary per workflow.
// Every counter lives in the durable store; the Service keeps no state of
// its own beyond configuration, so any number of instances may run
// concurrently against the same store.
type Service struct {
	store     domain.Store
	cfg       config.BookingConfig
	admission AdmissionController
	sequencer OrderSequencer
	ledger    PromotionLedger
	allocator *TableAllocator
	events    EventPublisher
	now       func() time.Time
}

// Option customises Service construction.
type Option func(*Service)

// WithClock overrides the workflow clock. Tests use this to pin order
// numbers and promotion windows to a fixed date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds the engine on top of a Store. events may be nil, in
// which case no events are published.
func NewService(store domain.Store, cfg config.BookingConfig, events EventPublisher, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cfg:       cfg,
		allocator: NewTableAllocator(cfg),
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}
