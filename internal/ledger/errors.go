package ledger

import (
	"errors"

	"github.com/mmynk/mrsplit/internal/calculator"
)

var (
	ErrUnknownMember   = errors.New("member is not part of the group")
	ErrInvalidMember   = errors.New("member id must not be empty")
	ErrDuplicateMember = errors.New("member already exists with a different name")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrSelfPayment     = errors.New("payer and receiver must be different members")
	ErrCorrupt         = errors.New("ledger data is inconsistent")
)

// Kind returns a short stable label for err, suitable for metrics and
// user-facing messages. Unknown errors map to "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCorrupt):
		return "corrupt"
	case errors.Is(err, calculator.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, calculator.ErrEmptyMemberSet):
		return "empty_member_set"
	case errors.Is(err, ErrUnknownMember):
		return "unknown_member"
	case errors.Is(err, calculator.ErrUnbalanced):
		return "unbalanced"
	case errors.Is(err, calculator.ErrOverflow):
		return "out_of_range"
	case errors.Is(err, calculator.ErrInvalidWeight):
		return "invalid_weight"
	case errors.Is(err, calculator.ErrShareMismatch):
		return "share_mismatch"
	case errors.Is(err, ErrInvalidMember):
		return "invalid_member"
	case errors.Is(err, ErrDuplicateMember):
		return "duplicate_member"
	case errors.Is(err, ErrExpenseNotFound):
		return "expense_not_found"
	case errors.Is(err, ErrSelfPayment):
		return "self_payment"
	default:
		return "internal"
	}
}
