package models

// ExpenseKind distinguishes shared costs from recorded settle-up payments.
type ExpenseKind string

const (
	// KindExpense is a cost paid by one member and owed by the split members.
	KindExpense ExpenseKind = "expense"

	// KindPayment is a settle-up payment from the payer to the single split member.
	KindPayment ExpenseKind = "payment"
)

// Expense represents a recorded cost together with all of its splits.
// An expense and its splits are created atomically; the sum of the split
// shares always equals Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Seq is the position of the expense in the group's append-only log,
	// starting at 0. Higher values are newer.
	Seq int64

	// Kind is either KindExpense or KindPayment.
	Kind ExpenseKind

	// Title is the human-readable name for the expense (e.g., "Groceries").
	Title string

	// Description is an optional free-form note.
	Description string

	// PayerID is the member who paid the full amount.
	PayerID string

	// Amount is the total in minor units (e.g., cents). Always positive.
	Amount int64

	// CreatedBy is the optional ID of whoever recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the per-member shares of Amount.
	Splits []Split
}

// Split represents one member's share of an expense.
type Split struct {
	ExpenseID string
	MemberID  string

	// Share is the amount this member owes for the expense, in minor units.
	Share int64
}

// Transfer is a proposed payment that moves two members' net positions
// toward zero. Transfers are derived by settlement and never persisted.
type Transfer struct {
	From   string // Member who pays (debtor)
	To     string // Member who receives (creditor)
	Amount int64
}

// Clone returns a deep copy of the expense so callers cannot mutate
// shared ledger state.
func (e *Expense) Clone() *Expense {
	c := *e
	c.Splits = make([]Split, len(e.Splits))
	copy(c.Splits, e.Splits)
	return &c
}

// ShareOf returns the share owed by memberID, or zero if the member has no split.
func (e *Expense) ShareOf(memberID string) int64 {
	for _, s := range e.Splits {
		if s.MemberID == memberID {
			return s.Share
		}
	}
	return 0
}
