// Package service coordinates groups, their ledgers and storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/mrsplit/internal/ledger"
	"github.com/mmynk/mrsplit/internal/models"
	"github.com/mmynk/mrsplit/internal/storage"
)

var (
	// ErrAmbiguousGroup is returned when a name matches more than one group.
	ErrAmbiguousGroup = errors.New("group name is ambiguous")
	// ErrInvalidGroup is returned for a group without a name or members.
	ErrInvalidGroup = errors.New("group needs a name and at least one member")
)

// Service keeps one ledger per group. Ledgers are loaded from the store on
// first use and every write goes through them to the store.
type Service struct {
	store    storage.Store
	recorder ledger.Recorder
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	ledgers map[string]*ledger.Ledger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports ledger activity to r.
func WithRecorder(r ledger.Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source of every ledger.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service with the given storage backend.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  slog.Default(),
		ledgers: make(map[string]*ledger.Ledger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGroup creates a new group with the given members.
func (s *Service) CreateGroup(ctx context.Context, name string, members []models.Member) (*models.Group, error) {
	s.logger.Info("CreateGroup request received", "name", name, "members_count", len(members))

	name = strings.TrimSpace(name)
	if name == "" || len(members) == 0 {
		s.logger.Warn("CreateGroup rejected", "error", ErrInvalidGroup)
		return nil, ErrInvalidGroup
	}

	group := &models.Group{Name: name, Members: members}
	// Validate members before touching storage
	if _, err := ledger.New(*group, nil); err != nil {
		s.logger.Warn("CreateGroup rejected", "error", err)
		return nil, err
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("CreateGroup failed", "error", err)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.Info("Group created", "group_id", group.ID)
	return group, nil
}

// ListGroups returns the groups memberID belongs to, oldest first. An empty
// memberID returns every group.
func (s *Service) ListGroups(ctx context.Context, memberID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.logger.Error("ListGroups failed", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if memberID != "" {
		filtered := groups[:0]
		for _, g := range groups {
			if g.HasMember(memberID) {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}
	s.logger.Debug("ListGroups successful", "member_id", memberID, "count", len(groups))
	return groups, nil
}

// ResolveGroup finds a group by ID, or else by a name that matches exactly
// one group (case-insensitive). It returns the group ID.
func (s *Service) ResolveGroup(ctx context.Context, idOrName string) (string, error) {
	if _, err := s.store.GetGroup(ctx, idOrName); err == nil {
		return idOrName, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	groups, err := s.ListGroups(ctx, "")
	if err != nil {
		return "", err
	}
	var matches []string
	for _, g := range groups {
		if strings.EqualFold(g.Name, idOrName) {
			matches = append(matches, g.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("group %s: %w", idOrName, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d groups", ErrAmbiguousGroup, idOrName, len(matches))
	}
}

// Ledger returns the ledger of a group, loading it from storage on first use.
func (s *Service) Ledger(ctx context.Context, groupID string) (*ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[groupID]; ok {
		return l, nil
	}

	opts := []ledger.Option{
		ledger.WithPersister(s.store),
		ledger.WithLogger(s.logger),
	}
	if s.recorder != nil {
		opts = append(opts, ledger.WithRecorder(s.recorder))
	}
	if s.now != nil {
		opts = append(opts, ledger.WithClock(s.now))
	}
	l, err := ledger.Load(ctx, s.store, groupID, opts...)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load ledger", "group_id", groupID, "error", err)
		}
		return nil, err
	}
	s.ledgers[groupID] = l
	s.logger.Debug("Ledger loaded", "group_id", groupID, "members_count", len(l.Members()))
	return l, nil
}

// AddMembers adds members to a group and returns the ones that were new.
func (s *Service) AddMembers(ctx context.Context, groupID string, members []models.Member) ([]models.Member, error) {
	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	added, err := l.AddMembers(ctx, members...)
	if err != nil {
		s.logFailure("AddMembers", groupID, err)
		return nil, err
	}
	s.logger.Info("Members added", "group_id", groupID, "added_count", len(added))
	return added, nil
}

// RecordExpense records an expense in a group.
func (s *Service) RecordExpense(ctx context.Context, groupID string, in ledger.ExpenseInput) (*models.Expense, error) {
	s.logger.Info("RecordExpense request received",
		"group_id", groupID,
		"payer_id", in.PayerID,
		"amount", in.Amount,
		"members_count", len(in.MemberIDs),
	)

	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expense, err := l.RecordExpense(ctx, in)
	if err != nil {
		s.logFailure("RecordExpense", groupID, err)
		return nil, err
	}

	s.logger.Info("Expense recorded", "group_id", groupID, "expense_id", expense.ID, "seq", expense.Seq)
	return expense, nil
}

// RecordPayment records a payment between two members of a group.
func (s *Service) RecordPayment(ctx context.Context, groupID string, in ledger.PaymentInput) (*models.Expense, error) {
	s.logger.Info("RecordPayment request received",
		"group_id", groupID,
		"from", in.From,
		"to", in.To,
		"amount", in.Amount,
	)

	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payment, err := l.RecordPayment(ctx, in)
	if err != nil {
		s.logFailure("RecordPayment", groupID, err)
		return nil, err
	}

	s.logger.Info("Payment recorded", "group_id", groupID, "expense_id", payment.ID)
	return payment, nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *Service) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return l.ListExpenses(), nil
}

// GetExpense returns a single expense with its splits.
func (s *Service) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, e := range l.ListExpenses() {
		if e.ID == expenseID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ledger.ErrExpenseNotFound, expenseID)
}

// Balances returns the per-member summary of a group.
func (s *Service) Balances(ctx context.Context, groupID string) (*Summary, error) {
	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &Summary{Group: l.Group(), Balances: l.Balances()}, nil
}

// Settle returns the transfers that settle all debts in a group.
func (s *Service) Settle(ctx context.Context, groupID string) ([]models.Transfer, error) {
	l, err := s.Ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	transfers, err := l.Settle()
	if err != nil {
		return nil, err
	}
	s.logger.Info("Settlement computed", "group_id", groupID, "transfers_count", len(transfers))
	return transfers, nil
}

// forget drops the cached ledger of a group so the next use reloads it.
func (s *Service) forget(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, groupID)
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// logFailure logs rejected input at Warn and storage failures at Error.
// After a storage failure the cached ledger is dropped: the store may hold
// writes from another process that this ledger has not seen.
func (s *Service) logFailure(op, groupID string, err error) {
	if ledger.Kind(err) == "internal" {
		s.logger.Error(op+" failed", "group_id", groupID, "error", err)
		s.forget(groupID)
		return
	}
	s.logger.Warn(op+" rejected", "group_id", groupID, "reason", ledger.Kind(err), "error", err)
}
