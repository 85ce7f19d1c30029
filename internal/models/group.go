package models

// Group represents a set of users who share expenses, e.g. "Roommates" or
// "Ski Trip". Expenses and settlements can be scoped to a group, and balance
// queries for a group consider only records carrying its ID.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string `json:"created_by"`

	// MemberIDs are the user IDs of the group's members.
	MemberIDs []string `json:"member_ids"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
