package invoice

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Builder turns the form state into a Record. Clock and ID source are
// injectable so tests get deterministic records.
type Builder struct {
	now   func() time.Time
	newID func() uuid.UUID
}

type BuilderOption func(*Builder)

func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

func WithIDSource(newID func() uuid.UUID) BuilderOption {
	return func(b *Builder) { b.newID = newID }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: uuid.New,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build snapshots header and ledger into a Record. Empty header fields are allowed.
func (b *Builder) Build(header Header, ledger Ledger) Record {
	return Record{
		ID:              b.newID(),
		Number:          header.Number,
		Date:            header.Date,
		Customer:        header.Customer,
		CustomerAddress: header.CustomerAddress,
		Items:           ledger.Items(),
		Notes:           header.Notes,
		Subtotal:        ledger.Subtotal(),
		Total:           ledger.Total(),
		CreatedAt:       b.now().UTC(),
	}
}

// AppendToHistory returns a new history with r at the end. The input slice is
// left untouched and does not share storage with the result.
func AppendToHistory(history []Record, r Record) []Record {
	out := make([]Record, len(history), len(history)+1)
	copy(out, history)

	r.Items = slices.Clone(r.Items)

	return append(out, r)
}
