// Package policy holds the authorization rules shared by the HTTP
// middleware and the services. The checks are stateless predicates over the
// data they are given.
package policy

import (
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// CheckRole reports whether role is one of allowed. No allowed roles means
// the operation is unrestricted.
func CheckRole(role string, allowed ...string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CheckTaskMutation allows updating or deleting a task only to its creator
// or to an admin.
func CheckTaskMutation(actor Actor, task domain.Task) error {
	if actor.ID != "" && task.CreatedByID == actor.ID {
		return nil
	}
	if actor.IsAdmin() {
		return nil
	}
	return domain.ErrForbidden
}

// CheckAssignment rejects assigning a user who is already a project member.
func CheckAssignment(project domain.Project, userID string) error {
	if project.HasMember(userID) {
		return domain.ErrAlreadyMember
	}
	return nil
}
