package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestAccumulate(t *testing.T) {
	expenses := []ExpenseForBalance{
		{PayerID: "A", Amount: 90, Shares: map[string]int64{"A": 30, "B": 30, "C": 30}},
		{PayerID: "B", Amount: 40, Shares: map[string]int64{"A": 20, "C": 20}},
	}

	var totals map[string]MemberBalance
	for _, e := range expenses {
		next, err := Accumulate(totals, e)
		if err != nil {
			t.Fatalf("Accumulate failed: %v", err)
		}
		totals = next
	}

	for _, want := range MemberBalances([]string{"A", "B", "C"}, expenses) {
		if got := totals[want.MemberID]; got != want {
			t.Errorf("totals[%s] = %+v, want %+v", want.MemberID, got, want)
		}
	}
}

func TestAccumulate_Overflow(t *testing.T) {
	e := ExpenseForBalance{PayerID: "A", Amount: math.MaxInt64, Shares: map[string]int64{"B": math.MaxInt64}}

	totals, err := Accumulate(nil, e)
	if err != nil {
		t.Fatalf("first Accumulate failed: %v", err)
	}
	before := map[string]MemberBalance{"A": totals["A"], "B": totals["B"]}

	if _, err := Accumulate(totals, e); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if !reflect.DeepEqual(totals, before) {
		t.Errorf("totals modified on failure: %+v", totals)
	}
}

func TestMemberBalanceAdd(t *testing.T) {
	a := MemberBalance{MemberID: "A", OwedToThem: 10, TheyOwe: 4, Net: 6}
	got, err := a.Add(MemberBalance{OwedToThem: 1, TheyOwe: 2, Net: -1})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if want := (MemberBalance{MemberID: "A", OwedToThem: 11, TheyOwe: 6, Net: 5}); got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}

	big := MemberBalance{MemberID: "A", TheyOwe: math.MaxInt64, Net: math.MinInt64 + 1}
	if _, err := big.Add(MemberBalance{TheyOwe: 1, Net: -1}); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}
