package history

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=history
type Repository interface {
	Load(ctx context.Context) ([]invoice.Record, error)
	Store(ctx context.Context, records []invoice.Record) error
}

// Service owns the in-memory invoice history and writes it through to a Repository.
// Saves are serialized; writers in other processes sharing the same backend are not
// coordinated, the last one to store wins.
type Service struct {
	repo    Repository
	builder *invoice.Builder

	mu      sync.Mutex
	records []invoice.Record
	loaded  bool
}

func NewService(repo Repository, builder *invoice.Builder) *Service {
	if builder == nil {
		builder = invoice.NewBuilder()
	}

	return &Service{
		repo:    repo,
		builder: builder,
		records: []invoice.Record{},
	}
}

// Load reads the stored history and makes it current. An unreadable or
// malformed store is treated as empty on the first load; once a history has
// been read, a failed reload keeps it so the next Save cannot drop records.
func (s *Service) Load(ctx context.Context) []invoice.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		if s.loaded {
			slog.Warn("invoice history unreadable, keeping current", "error", err, "count", len(s.records))

			return slices.Clone(s.records)
		}

		slog.Warn("invoice history unreadable, starting empty", "error", err)

		records = []invoice.Record{}
	}

	if records == nil {
		records = []invoice.Record{}
	}

	s.records = records
	s.loaded = true

	return slices.Clone(records)
}

// Save builds a record from the form and appends it to the history. When the
// store fails the in-memory history is left as it was and ErrStoreFailed is returned,
// so the caller can keep the form and retry.
func (s *Service) Save(ctx context.Context, header invoice.Header, ledger invoice.Ledger) (invoice.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.builder.Build(header, ledger)
	next := invoice.AppendToHistory(s.records, rec)

	if err := s.repo.Store(ctx, next); err != nil {
		return invoice.Record{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.records = next
	s.loaded = true

	slog.Info("invoice saved", "number", rec.Number, "total", rec.Total.String(), "count", len(next))

	return rec, nil
}

// List returns a copy of the current history in save order.
func (s *Service) List() []invoice.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

func (s *Service) Find(id uuid.UUID) (invoice.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}

	return invoice.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
