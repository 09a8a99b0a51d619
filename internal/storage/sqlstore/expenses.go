package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/mrsplit/internal/models"
)

// CreateExpense persists an expense and all of its splits in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO expenses (id, group_id, seq, kind, title, description, payer_id, amount, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		expense.ID, expense.GroupID, expense.Seq, string(expense.Kind), expense.Title,
		nullString(expense.Description), expense.PayerID, expense.Amount,
		nullString(expense.CreatedBy), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			s.rebind("INSERT INTO splits (expense_id, member_id, share) VALUES (?, ?, ?)"),
			expense.ID, split.MemberID, split.Share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses of a group ordered by seq, with
// their splits ordered by member ID.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT id, group_id, seq, kind, title, description, payer_id, amount, created_by, created_at
		 FROM expenses WHERE group_id = ? ORDER BY seq`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var kind string
		var description, createdBy sql.NullString

		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Seq, &kind, &expense.Title,
			&description, &expense.PayerID, &expense.Amount, &createdBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Kind = models.ExpenseKind(kind)
		expense.Description = description.String
		expense.CreatedBy = createdBy.String

		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splitRows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT s.expense_id, s.member_id, s.share
		 FROM splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.group_id = ? ORDER BY e.seq, s.member_id`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split models.Split
		if err := splitRows.Scan(&split.ExpenseID, &split.MemberID, &split.Share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if expense, ok := byID[split.ExpenseID]; ok {
			expense.Splits = append(expense.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
