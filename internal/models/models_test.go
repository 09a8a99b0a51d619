package models

import "testing"

func TestGroupMembers(t *testing.T) {
	g := &Group{Members: []Member{{ID: "carol"}, {ID: "alice"}}}

	ids := g.MemberIDs()
	if len(ids) != 2 || ids[0] != "carol" || ids[1] != "alice" {
		t.Errorf("MemberIDs() = %v, want join order", ids)
	}
	if !g.HasMember("alice") || g.HasMember("bob") {
		t.Error("HasMember mismatch")
	}
}

func TestExpenseClone(t *testing.T) {
	e := &Expense{
		ID:     "e1",
		Amount: 10,
		Splits: []Split{{ExpenseID: "e1", MemberID: "a", Share: 6}, {ExpenseID: "e1", MemberID: "b", Share: 4}},
	}

	c := e.Clone()
	c.Splits[0].Share = 99
	if e.Splits[0].Share != 6 {
		t.Error("Clone shares splits with the original")
	}
	if e.ShareOf("b") != 4 || e.ShareOf("z") != 0 {
		t.Errorf("ShareOf mismatch: b=%d z=%d", e.ShareOf("b"), e.ShareOf("z"))
	}
}
