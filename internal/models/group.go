package models

// Member represents a person in a group.
// Members are immutable once created. The same member ID may appear in
// several groups.
type Member struct {
	// ID is the opaque identifier of the member, unique within a group.
	ID string

	// Name is the display name of the member.
	Name string
}

// Group represents a set of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// Members is the list of members in this group. Member IDs are unique.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the group contains a member with the given ID.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// MemberIDs returns the IDs of all members in the order they were added.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
