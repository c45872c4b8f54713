package exercises

import (
	"github.com/2beens/fittrack/internal/auth"
)

type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityOwned
)

func (v Visibility) String() string {
	if v == VisibilityOwned {
		return "owned"
	}
	return "public"
}

type Decision int

const (
	DecisionAllow Decision = iota
	DecisionForbidden
	DecisionNotFound
)

func VisibilityOf(ex *Exercise) Visibility {
	if ex.UserID == nil {
		return VisibilityPublic
	}
	return VisibilityOwned
}

// CanRead: admins see everything, everybody sees public exercises, owners see their own.
func CanRead(p *auth.Principal, ex *Exercise) bool {
	if p.Admin() || VisibilityOf(ex) == VisibilityPublic {
		return true
	}
	return p.Is(*ex.UserID)
}

// CanWrite decides an update or delete. Exercises the caller cannot see are reported as
// not found, so their existence is not leaked.
func CanWrite(p *auth.Principal, ex *Exercise, publicMutable bool) Decision {
	if !CanRead(p, ex) {
		return DecisionNotFound
	}
	if p == nil {
		return DecisionForbidden
	}
	if p.IsAdmin {
		return DecisionAllow
	}
	if VisibilityOf(ex) == VisibilityOwned {
		// readable and owned means it's the caller's own
		return DecisionAllow
	}
	if publicMutable {
		return DecisionAllow
	}
	return DecisionForbidden
}

// FilterReadable keeps the exercises the principal may read, preserving order.
func FilterReadable(p *auth.Principal, all []Exercise) []Exercise {
	visible := make([]Exercise, 0, len(all))
	for i := range all {
		if CanRead(p, &all[i]) {
			visible = append(visible, all[i])
		}
	}
	return visible
}
