package calculator

import (
	"container/heap"
	"fmt"
	"math"
	"math/bits"

	"github.com/mmynk/mrsplit/internal/models"
)

// Settle reduces net positions to a short list of transfers that brings every
// member to zero.
//
// Algorithm (greedy largest debt to largest credit):
// - split members into debtors (negative) and creditors (positive)
// - repeatedly pair the largest debtor with the largest creditor and
// transfer min(debt, credit)
// - a member whose position reaches zero leaves the pool
//
// Ties on magnitude go to the lexicographically smallest member ID. Every
// step zeroes at least one member and the last step zeroes two, so the result
// has at most n-1 transfers for n nonzero positions. This is not always the
// true minimum, which is NP-hard to find.
//
// Credits and debts are totalled in 128 bits, so positions that only balance
// after wrapping around int64 are reported as unbalanced.
func Settle(positions map[string]int64) ([]models.Transfer, error) {
	var credit, debt uint128
	debtors := &party{}
	creditors := &party{}
	for id, p := range positions {
		switch {
		case p == math.MinInt64:
			return nil, fmt.Errorf("%w: position of %s", ErrOverflow, id)
		case p < 0:
			debt.add(uint64(-p))
			*debtors = append(*debtors, entry{id: id, amount: -p})
		case p > 0:
			credit.add(uint64(p))
			*creditors = append(*creditors, entry{id: id, amount: p})
		}
	}
	if credit != debt {
		return nil, fmt.Errorf("%w: credits %s, debts %s", ErrUnbalanced, credit, debt)
	}

	heap.Init(debtors)
	heap.Init(creditors)

	var transfers []models.Transfer
	for debtors.Len() > 0 && creditors.Len() > 0 {
		d := heap.Pop(debtors).(entry)
		c := heap.Pop(creditors).(entry)

		amount := min(d.amount, c.amount)
		transfers = append(transfers, models.Transfer{From: d.id, To: c.id, Amount: amount})

		d.amount -= amount
		c.amount -= amount
		if d.amount > 0 {
			heap.Push(debtors, d)
		}
		if c.amount > 0 {
			heap.Push(creditors, c)
		}
	}
	return transfers, nil
}

type entry struct {
	id     string
	amount int64 // absolute value of the position
}

// party is a max-heap on amount, smallest ID first on ties.
type party []entry

func (p party) Len() int { return len(p) }
func (p party) Less(i, j int) bool {
	if p[i].amount != p[j].amount {
		return p[i].amount > p[j].amount
	}
	return p[i].id < p[j].id
}
func (p party) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *party) Push(x any) { *p = append(*p, x.(entry)) }

func (p *party) Pop() any {
	old := *p
	n := len(old)
	e := old[n-1]
	*p = old[:n-1]
	return e
}

type uint128 struct {
	hi, lo uint64
}

func (u *uint128) add(v uint64) {
	var carry uint64
	u.lo, carry = bits.Add64(u.lo, v, 0)
	u.hi += carry
}

func (u uint128) String() string {
	if u.hi == 0 {
		return fmt.Sprintf("%d", u.lo)
	}
	return fmt.Sprintf("%d*2^64+%d", u.hi, u.lo)
}
