package service

import (
	"github.com/mmynk/mrsplit/internal/calculator"
	"github.com/mmynk/mrsplit/internal/models"
)

// Summary is a group together with its per-member balances.
type Summary struct {
	Group    models.Group
	Balances []calculator.MemberBalance
}

// Name returns the display name of a member, falling back to the ID.
func (s *Summary) Name(memberID string) string {
	return memberName(s.Group, memberID)
}
