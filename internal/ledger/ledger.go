// Package ledger holds the append-only expense log of one group and derives
// balances and settlements from it.
//
// Writers are serialized per ledger. Every write builds a new immutable
// snapshot which is published atomically once the persister has committed,
// so an expense and all of its splits become visible together. Readers load
// the current snapshot and never lock.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmynk/mrsplit/internal/calculator"
	"github.com/mmynk/mrsplit/internal/models"
)

// Ledger is the expense log of a single group.
type Ledger struct {
	groupID   string
	groupName string
	createdAt int64

	mu    sync.Mutex // serializes writers
	state atomic.Pointer[snapshot]

	persister Persister
	recorder  Recorder
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

type snapshot struct {
	members []models.Member
	index   map[string]int // member ID -> position in members

	// expenses is append-only and ordered by Seq. Writers may append into
	// spare capacity; readers never index past their own snapshot's length.
	expenses []*models.Expense

	// totals holds every member's running owed/owing/net totals. Each write
	// is checked against it so no total ever wraps around int64.
	totals map[string]calculator.MemberBalance
}

// ExpenseInput describes an expense to record. Exactly one allocation is
// used, in this order of precedence:
//   - Shares: exact shares that must sum to Amount
//   - Weights: shares proportional to positive weights
//   - MemberIDs: equal shares
type ExpenseInput struct {
	PayerID   string
	Amount    int64
	MemberIDs []string
	Weights   map[string]int64
	Shares    map[string]int64

	Title       string
	Description string
	CreatedBy   string
}

// PaymentInput describes a settle-up payment from one member to another.
type PaymentInput struct {
	From      string
	To        string
	Amount    int64
	Note      string
	CreatedBy string
}

// New creates a ledger for group from previously stored expenses.
// Expenses must be ordered by Seq starting at 0 and be internally consistent.
func New(group models.Group, expenses []*models.Expense, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		groupID:   group.ID,
		groupName: group.Name,
		createdAt: group.CreatedAt,
	}
	defaults(l)
	for _, opt := range opts {
		opt(l)
	}

	snap := &snapshot{index: make(map[string]int, len(group.Members))}
	for _, m := range group.Members {
		if m.ID == "" {
			return nil, ErrInvalidMember
		}
		if _, dup := snap.index[m.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
		}
		snap.index[m.ID] = len(snap.members)
		snap.members = append(snap.members, m)
	}

	for i, e := range expenses {
		if err := validateStored(snap, group.ID, int64(i), e); err != nil {
			return nil, err
		}
		totals, err := calculator.Accumulate(snap.totals, forBalance(e))
		if err != nil {
			return nil, fmt.Errorf("%w: expense %s: %w", ErrCorrupt, e.ID, err)
		}
		snap.totals = totals
		snap.expenses = append(snap.expenses, e.Clone())
	}

	l.state.Store(snap)
	return l, nil
}

func validateStored(snap *snapshot, groupID string, seq int64, e *models.Expense) error {
	if e.GroupID != groupID || e.Seq != seq {
		return fmt.Errorf("%w: expense %s has group %s seq %d, want group %s seq %d",
			ErrCorrupt, e.ID, e.GroupID, e.Seq, groupID, seq)
	}
	if _, ok := snap.index[e.PayerID]; !ok {
		return fmt.Errorf("%w: expense %s: payer %s: %w", ErrCorrupt, e.ID, e.PayerID, ErrUnknownMember)
	}
	var sum int64
	for _, s := range e.Splits {
		if _, ok := snap.index[s.MemberID]; !ok {
			return fmt.Errorf("%w: expense %s: split %s: %w", ErrCorrupt, e.ID, s.MemberID, ErrUnknownMember)
		}
		sum += s.Share
	}
	if sum != e.Amount {
		return fmt.Errorf("%w: expense %s splits sum to %d, amount is %d", ErrCorrupt, e.ID, sum, e.Amount)
	}
	return nil
}

// GroupID returns the ID of the group this ledger belongs to.
func (l *Ledger) GroupID() string {
	return l.groupID
}

// Group returns the group with its current members.
func (l *Ledger) Group() models.Group {
	return models.Group{
		ID:        l.groupID,
		Name:      l.groupName,
		Members:   l.Members(),
		CreatedAt: l.createdAt,
	}
}

// Members returns the group's members in the order they joined.
func (l *Ledger) Members() []models.Member {
	snap := l.state.Load()
	out := make([]models.Member, len(snap.members))
	copy(out, snap.members)
	return out
}

// AddMembers adds members to the group and returns the ones that were new.
// Members whose ID and name already exist are skipped; an existing ID with a
// different name fails with ErrDuplicateMember.
func (l *Ledger) AddMembers(ctx context.Context, members ...models.Member) ([]models.Member, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.state.Load()
	pending := make(map[string]string)
	var added []models.Member
	for _, m := range members {
		if m.ID == "" {
			return nil, ErrInvalidMember
		}
		name, seen := pending[m.ID]
		if pos, ok := snap.index[m.ID]; ok {
			name, seen = snap.members[pos].Name, true
		}
		if seen {
			if name != m.Name {
				return nil, fmt.Errorf("%w: %s is %q", ErrDuplicateMember, m.ID, name)
			}
			continue
		}
		pending[m.ID] = m.Name
		added = append(added, m)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if l.persister != nil {
		if err := l.persister.AddGroupMembers(ctx, l.groupID, added); err != nil {
			return nil, fmt.Errorf("failed to store members: %w", err)
		}
	}

	next := &snapshot{
		members:  make([]models.Member, 0, len(snap.members)+len(added)),
		index:    make(map[string]int, len(snap.index)+len(added)),
		expenses: snap.expenses,
		totals:   snap.totals,
	}
	next.members = append(next.members, snap.members...)
	next.members = append(next.members, added...)
	for i, m := range next.members {
		next.index[m.ID] = i
	}
	l.state.Store(next)

	return added, nil
}

// RecordExpense allocates in.Amount, then stores the expense with all of its
// splits as one unit. On any error nothing is recorded.
func (l *Ledger) RecordExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.state.Load()
	shares, err := allocate(snap, in)
	if err != nil {
		l.recorder.Rejected(Kind(err))
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = generateTitle(memberNames(snap, sortedKeys(shares)))
	}
	return l.commit(ctx, snap, models.KindExpense, in.PayerID, in.Amount, shares, title, in.Description, in.CreatedBy)
}

// RecordPayment records that in.From paid in.To. It is stored as an expense
// paid by From with a single split for To, so From's net position rises by
// Amount and To's falls by Amount.
func (l *Ledger) RecordPayment(ctx context.Context, in PaymentInput) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.state.Load()
	err := func() error {
		if in.Amount <= 0 {
			return fmt.Errorf("%w: got %d", calculator.ErrInvalidAmount, in.Amount)
		}
		if err := checkMembers(snap, in.From, in.To); err != nil {
			return err
		}
		if in.From == in.To {
			return fmt.Errorf("%w: %s", ErrSelfPayment, in.From)
		}
		return nil
	}()
	if err != nil {
		l.recorder.Rejected(Kind(err))
		return nil, err
	}

	title := "Payment to " + memberNames(snap, []string{in.To})[0]
	shares := map[string]int64{in.To: in.Amount}
	return l.commit(ctx, snap, models.KindPayment, in.From, in.Amount, shares, title, in.Note, in.CreatedBy)
}

func (l *Ledger) commit(ctx context.Context, snap *snapshot, kind models.ExpenseKind,
	payerID string, amount int64, shares map[string]int64, title, description, createdBy string) (*models.Expense, error) {
	expense := &models.Expense{
		ID:          l.newID(),
		GroupID:     l.groupID,
		Seq:         int64(len(snap.expenses)),
		Kind:        kind,
		Title:       title,
		Description: description,
		PayerID:     payerID,
		Amount:      amount,
		CreatedBy:   createdBy,
		CreatedAt:   l.now().Unix(),
	}
	for _, id := range sortedKeys(shares) {
		expense.Splits = append(expense.Splits, models.Split{
			ExpenseID: expense.ID,
			MemberID:  id,
			Share:     shares[id],
		})
	}

	totals, err := calculator.Accumulate(snap.totals, forBalance(expense))
	if err != nil {
		l.recorder.Rejected(Kind(err))
		return nil, err
	}

	if l.persister != nil {
		if err := l.persister.CreateExpense(ctx, expense); err != nil {
			return nil, fmt.Errorf("failed to store expense: %w", err)
		}
	}

	l.state.Store(&snapshot{
		members:  snap.members,
		index:    snap.index,
		expenses: append(snap.expenses, expense),
		totals:   totals,
	})
	l.recorder.ExpenseRecorded(kind, amount)

	return expense.Clone(), nil
}

func allocate(snap *snapshot, in ExpenseInput) (map[string]int64, error) {
	if err := checkMembers(snap, in.PayerID); err != nil {
		return nil, err
	}

	switch {
	case in.Shares != nil:
		if err := checkMembers(snap, sortedKeys(in.Shares)...); err != nil {
			return nil, err
		}
		return calculator.Exact(in.Amount, in.Shares)
	case in.Weights != nil:
		if err := checkMembers(snap, sortedKeys(in.Weights)...); err != nil {
			return nil, err
		}
		return calculator.AllocateWeighted(in.Amount, in.Weights)
	default:
		if err := checkMembers(snap, in.MemberIDs...); err != nil {
			return nil, err
		}
		return calculator.Allocate(in.Amount, in.MemberIDs)
	}
}

func checkMembers(snap *snapshot, ids ...string) error {
	for _, id := range ids {
		if _, ok := snap.index[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMember, id)
		}
	}
	return nil
}

// ListExpenses returns all expenses, newest first.
func (l *Ledger) ListExpenses() []*models.Expense {
	snap := l.state.Load()
	out := make([]*models.Expense, len(snap.expenses))
	for i, e := range snap.expenses {
		out[len(out)-1-i] = e.Clone()
	}
	return out
}

// SplitsFor returns the splits of the given expense, ordered by member ID.
func (l *Ledger) SplitsFor(expenseID string) ([]models.Split, error) {
	snap := l.state.Load()
	for i := len(snap.expenses) - 1; i >= 0; i-- {
		if e := snap.expenses[i]; e.ID == expenseID {
			return e.Clone().Splits, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
}

// NetPositions returns every member's signed net position in minor units.
// Positive means the member is owed money.
func (l *Ledger) NetPositions() map[string]int64 {
	snap := l.state.Load()
	return calculator.NetPositions(memberIDs(snap), forBalances(snap.expenses))
}

// Balances returns the owed/owing breakdown of every member, sorted by ID.
func (l *Ledger) Balances() []calculator.MemberBalance {
	snap := l.state.Load()
	return calculator.MemberBalances(memberIDs(snap), forBalances(snap.expenses))
}

// Settle returns the transfers that would bring every member to zero.
func (l *Ledger) Settle() ([]models.Transfer, error) {
	transfers, err := calculator.Settle(l.NetPositions())
	if err != nil {
		if errors.Is(err, calculator.ErrUnbalanced) {
			l.logger.Error("Ledger assertion failed", "group_id", l.groupID, "error", err)
		}
		l.recorder.Rejected(Kind(err))
		return nil, err
	}
	l.recorder.Settled(len(transfers))
	return transfers, nil
}

func forBalance(e *models.Expense) calculator.ExpenseForBalance {
	shares := make(map[string]int64, len(e.Splits))
	for _, s := range e.Splits {
		shares[s.MemberID] += s.Share
	}
	return calculator.ExpenseForBalance{PayerID: e.PayerID, Amount: e.Amount, Shares: shares}
}

func forBalances(expenses []*models.Expense) []calculator.ExpenseForBalance {
	out := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		out[i] = forBalance(e)
	}
	return out
}

func memberIDs(snap *snapshot) []string {
	ids := make([]string, len(snap.members))
	for i, m := range snap.members {
		ids[i] = m.ID
	}
	return ids
}

func memberNames(snap *snapshot, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id
		if pos, ok := snap.index[id]; ok && snap.members[pos].Name != "" {
			names[i] = snap.members[pos].Name
		}
	}
	return names
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// generateTitle creates a title from the names of the members sharing an expense.
func generateTitle(names []string) string {
	if len(names) == 0 {
		return "Expense"
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
