package models

import "time"

// Group represents a named set of participants who share expenses.
//
// A group with zero members is not a valid persisted state: removing the
// last member deletes the group and cascades deletion of its expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description string `json:"description,omitempty"`

	// CreatedBy is the user ID of the member who created the group.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is when the group was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every membership change.
	UpdatedAt time.Time `json:"updatedAt"`

	// Members is the ordered list of current members. The creator is always
	// seeded as the first member.
	Members []GroupMember `json:"members"`
}

// Member returns the member with the given user ID, or nil if the user is
// not a current member.
func (g *Group) Member(userID string) *GroupMember {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// MemberIDs returns the user IDs of the current members in list order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// GroupMember is one participant's membership record within a group.
// It is owned by exactly one Group; the same user in two groups has two
// independent GroupMember entries.
type GroupMember struct {
	// UserID identifies the user. Unique within a group.
	UserID string `json:"userId"`

	// DisplayName is the name shown for this member within the group.
	DisplayName string `json:"displayName"`

	// Avatar is an optional profile picture URL.
	Avatar string `json:"avatar,omitempty"`

	// JoinedAt is when the member was added to the group.
	JoinedAt time.Time `json:"joinedAt"`
}
