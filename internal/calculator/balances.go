package calculator

import "sort"

// ExpenseForBalance represents an expense with the minimal information needed
// for balance calculations.
type ExpenseForBalance struct {
	PayerID string
	Amount  int64
	Shares  map[string]int64 // member ID -> share owed
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID   string
	OwedToThem int64 // What others owe this member for expenses they paid
	TheyOwe    int64 // What this member owes others
	Net        int64 // OwedToThem - TheyOwe; positive = owed money
}

// NetPositions computes each member's net position across expenses.
//
// Algorithm:
// - every member starts at 0
// - for each expense: payer gets +amount, every split member gets -share
//
// The payer's own share is added once (inside amount) and subtracted once,
// so they end up at amount minus their own share. Members referenced by an
// expense but missing from members are still included. Because the shares
// of every expense sum to its amount, the positions always sum to zero.
func NetPositions(members []string, expenses []ExpenseForBalance) map[string]int64 {
	positions := make(map[string]int64, len(members))
	for _, m := range members {
		positions[m] = 0
	}

	for _, e := range expenses {
		positions[e.PayerID] += e.Amount
		for member, share := range e.Shares {
			positions[member] -= share
		}
	}
	return positions
}

// MemberBalances computes the owed/owing breakdown for every member, sorted by
// member ID. Net matches NetPositions for the same input.
func MemberBalances(members []string, expenses []ExpenseForBalance) []MemberBalance {
	balances := make(map[string]*MemberBalance, len(members))
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{MemberID: id}
			balances[id] = b
		}
		return b
	}
	for _, m := range members {
		get(m)
	}

	for _, e := range expenses {
		// Payer is owed everything except their own share
		get(e.PayerID).OwedToThem += e.Amount - e.Shares[e.PayerID]
		for member, share := range e.Shares {
			if member != e.PayerID {
				get(member).TheyOwe += share
			}
		}
	}

	result := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.Net = b.OwedToThem - b.TheyOwe
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MemberID < result[j].MemberID
	})
	return result
}
