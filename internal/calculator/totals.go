package calculator

import (
	"fmt"
	"math"
)

// Add returns the field-wise sum of b and o. It fails with ErrOverflow
// instead of wrapping.
func (b MemberBalance) Add(o MemberBalance) (MemberBalance, error) {
	owed, ok1 := addInt64(b.OwedToThem, o.OwedToThem)
	owe, ok2 := addInt64(b.TheyOwe, o.TheyOwe)
	net, ok3 := addInt64(b.Net, o.Net)
	if !ok1 || !ok2 || !ok3 {
		return b, fmt.Errorf("%w: balance of %s", ErrOverflow, b.MemberID)
	}
	return MemberBalance{MemberID: b.MemberID, OwedToThem: owed, TheyOwe: owe, Net: net}, nil
}

// Accumulate returns a copy of totals with e applied, in the same terms as
// MemberBalances. totals is never modified. If any member's owed, owing or
// net total would leave the int64 range it fails with ErrOverflow, so
// callers can refuse the expense before storing it.
func Accumulate(totals map[string]MemberBalance, e ExpenseForBalance) (map[string]MemberBalance, error) {
	deltas := make(map[string]MemberBalance, len(e.Shares)+1)
	delta := func(id string) MemberBalance {
		d, ok := deltas[id]
		if !ok {
			d.MemberID = id
		}
		return d
	}

	own := e.Shares[e.PayerID]
	d := delta(e.PayerID)
	d.OwedToThem = e.Amount - own
	d.Net = e.Amount - own
	deltas[e.PayerID] = d
	for member, share := range e.Shares {
		if member == e.PayerID {
			continue
		}
		d := delta(member)
		d.TheyOwe = share
		d.Net = -share
		deltas[member] = d
	}

	next := make(map[string]MemberBalance, len(totals)+len(deltas))
	for id, b := range totals {
		next[id] = b
	}
	for id, d := range deltas {
		cur, ok := next[id]
		if !ok {
			cur = MemberBalance{MemberID: id}
		}
		sum, err := cur.Add(d)
		if err != nil {
			return nil, err
		}
		next[id] = sum
	}
	return next, nil
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}
