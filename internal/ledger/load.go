package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/mrsplit/internal/models"
)

// Source reads a group and its stored expenses.
type Source interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
}

// Load builds a ledger from the group and expenses stored in src.
func Load(ctx context.Context, src Source, groupID string, opts ...Option) (*Ledger, error) {
	group, err := src.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := src.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return New(*group, expenses, opts...)
}
