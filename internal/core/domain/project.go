package domain

import "time"

// Project groups tasks and the users assigned to work on them.
type Project struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	MemberIDs   []string  `json:"memberIds" bson:"member_ids"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// HasMember reports whether userID is assigned to the project.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Members returns the member ids with duplicates removed, preserving order.
func (p Project) Members() []string {
	seen := make(map[string]struct{}, len(p.MemberIDs))
	out := make([]string, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
