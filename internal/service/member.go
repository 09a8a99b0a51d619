package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/mmynk/mrsplit/internal/calculator"
	"github.com/mmynk/mrsplit/internal/ledger"
	"github.com/mmynk/mrsplit/internal/models"
)

// DefaultActivityLimit is the number of activity items returned when no
// limit is given.
const DefaultActivityLimit = 20

// ActivityItem is an expense or payment seen from one member's groups.
type ActivityItem struct {
	Expense   *models.Expense
	GroupID   string
	GroupName string
	PayerName string
}

// GroupBalance is one member's balance within a single group.
type GroupBalance struct {
	GroupID   string
	GroupName string
	Balance   calculator.MemberBalance
}

// MemberSummary is one member's balance in each of their groups and in total.
type MemberSummary struct {
	MemberID string
	Groups   []GroupBalance
	Total    calculator.MemberBalance
}

// Activity returns the most recent expenses and payments across every group
// memberID belongs to, newest first. limit <= 0 means DefaultActivityLimit.
func (s *Service) Activity(ctx context.Context, memberID string, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	ledgers, err := s.memberLedgers(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var items []ActivityItem
	for _, l := range ledgers {
		group := l.Group()
		for _, e := range l.ListExpenses() {
			items = append(items, ActivityItem{
				Expense:   e,
				GroupID:   group.ID,
				GroupName: group.Name,
				PayerName: memberName(group, e.PayerID),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Expense.CreatedAt != b.Expense.CreatedAt {
			return a.Expense.CreatedAt > b.Expense.CreatedAt
		}
		if a.GroupID != b.GroupID {
			return a.GroupID < b.GroupID
		}
		return a.Expense.Seq > b.Expense.Seq
	})
	if len(items) > limit {
		items = items[:limit]
	}

	s.logger.Debug("Activity successful", "member_id", memberID, "groups_count", len(ledgers), "count", len(items))
	return items, nil
}

// MemberSummary returns memberID's balance in every group they belong to,
// plus the totals across all of them.
func (s *Service) MemberSummary(ctx context.Context, memberID string) (*MemberSummary, error) {
	ledgers, err := s.memberLedgers(ctx, memberID)
	if err != nil {
		return nil, err
	}

	summary := &MemberSummary{
		MemberID: memberID,
		Total:    calculator.MemberBalance{MemberID: memberID},
	}
	for _, l := range ledgers {
		balance := calculator.MemberBalance{MemberID: memberID}
		for _, b := range l.Balances() {
			if b.MemberID == memberID {
				balance = b
				break
			}
		}
		total, err := summary.Total.Add(balance)
		if err != nil {
			s.logger.Warn("MemberSummary rejected", "member_id", memberID, "error", err)
			return nil, err
		}
		summary.Total = total
		summary.Groups = append(summary.Groups, GroupBalance{
			GroupID:   l.GroupID(),
			GroupName: l.Group().Name,
			Balance:   balance,
		})
	}
	return summary, nil
}

// memberLedgers returns the ledgers of every group memberID belongs to.
func (s *Service) memberLedgers(ctx context.Context, memberID string) ([]*ledger.Ledger, error) {
	groups, err := s.ListGroups(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: %q is in no group", ledger.ErrUnknownMember, memberID)
	}

	ledgers := make([]*ledger.Ledger, 0, len(groups))
	for _, g := range groups {
		l, err := s.Ledger(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, nil
}

func memberName(group models.Group, memberID string) string {
	for _, m := range group.Members {
		if m.ID == memberID && m.Name != "" {
			return m.Name
		}
	}
	return memberID
}
