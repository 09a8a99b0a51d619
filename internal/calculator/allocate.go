package calculator

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// Allocate divides total into equal shares among memberIDs.
//
// Algorithm:
// - base = total / n, remainder = total % n
// - members sorted by ID; the first remainder members get base+1, the rest base
//
// Duplicate IDs are counted once. The result does not depend on the order of
// memberIDs, and the shares always sum to total exactly.
func Allocate(total int64, memberIDs []string) (map[string]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, total)
	}
	ids := sortedUnique(memberIDs)
	if len(ids) == 0 {
		return nil, ErrEmptyMemberSet
	}

	n := int64(len(ids))
	base, remainder := total/n, total%n

	shares := make(map[string]int64, len(ids))
	for i, id := range ids {
		shares[id] = base
		if int64(i) < remainder {
			shares[id]++
		}
	}
	return shares, nil
}

// AllocateWeighted divides total proportionally to each member's positive weight.
// Each member first receives floor(total * weight / sum(weights)); the units
// left over go one each to members in ID order, the same rule Allocate uses.
func AllocateWeighted(total int64, weights map[string]int64) (map[string]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, total)
	}
	if len(weights) == 0 {
		return nil, ErrEmptyMemberSet
	}

	var sum int64
	for id, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: %s has weight %d", ErrInvalidWeight, id, w)
		}
		if sum > math.MaxInt64-w {
			return nil, fmt.Errorf("%w: sum of weights overflows", ErrInvalidWeight)
		}
		sum += w
	}

	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	shares := make(map[string]int64, len(ids))
	allocated := int64(0)
	for _, id := range ids {
		share := mulDiv(total, weights[id], sum)
		shares[id] = share
		allocated += share
	}

	// Each floor loses less than one unit, so leftover < len(ids).
	leftover := total - allocated
	for i := int64(0); i < leftover; i++ {
		shares[ids[i]]++
	}
	return shares, nil
}

// Exact validates caller-provided shares: every share must be non-negative
// and together they must sum to total.
func Exact(total int64, shares map[string]int64) (map[string]int64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, total)
	}
	if len(shares) == 0 {
		return nil, ErrEmptyMemberSet
	}

	var sum int64
	out := make(map[string]int64, len(shares))
	for id, s := range shares {
		if s < 0 {
			return nil, fmt.Errorf("%w: %s has negative share %d", ErrShareMismatch, id, s)
		}
		if sum > total-s {
			return nil, fmt.Errorf("%w: shares exceed %d", ErrShareMismatch, total)
		}
		sum += s
		out[id] = s
	}
	if sum != total {
		return nil, fmt.Errorf("%w: shares sum to %d, total is %d", ErrShareMismatch, sum, total)
	}
	return out, nil
}

// mulDiv returns floor(a * b / c) for positive a, b, c without overflowing.
// The quotient never exceeds a because b <= c.
func mulDiv(a, b, c int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(c))
	return int64(q)
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
