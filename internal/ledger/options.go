package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/mrsplit/internal/models"
)

// Persister durably stores ledger writes. Each call must be atomic: either
// everything it was given is stored or nothing is.
type Persister interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error
}

// Recorder observes ledger activity.
type Recorder interface {
	ExpenseRecorded(kind models.ExpenseKind, amount int64)
	Rejected(kind string)
	Settled(transfers int)
}

type noopRecorder struct{}

func (noopRecorder) ExpenseRecorded(models.ExpenseKind, int64) {}
func (noopRecorder) Rejected(string)                           {}
func (noopRecorder) Settled(int)                               {}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPersister stores every write through p before it becomes visible.
func WithPersister(p Persister) Option {
	return func(l *Ledger) {
		l.persister = p
	}
}

// WithRecorder reports ledger activity to r.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides how expense IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func defaults(l *Ledger) {
	l.recorder = noopRecorder{}
	l.now = time.Now
	l.newID = uuid.NewString
	l.logger = slog.Default()
}
