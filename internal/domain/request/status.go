package request

import (
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusClosed    Status = "closed"
	StatusPaid      Status = "paid" // terminal
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionClose    Action = "close"
	ActionPay      Action = "pay"
	ActionReassign Action = "reassign"
)

// ===============================
// Transition table
// ===============================

type transition struct {
	from []Status
	to   Status
	role string
}

// Every legal (state, action, role) combination lives here instead of
// being scattered across handlers. ActionClose is reachable from
// REQUESTED on purpose: a customer may review a request the
// professional never explicitly accepted, and the review is what
// closes it.
var transitions = map[Action]transition{
	ActionAccept: {
		from: []Status{StatusRequested},
		to:   StatusAccepted,
		role: models.RoleProfessional,
	},
	ActionReject: {
		from: []Status{StatusRequested},
		to:   StatusRejected,
		role: models.RoleProfessional,
	},
	ActionClose: {
		from: []Status{StatusRequested, StatusAccepted},
		to:   StatusClosed,
		role: models.RoleCustomer,
	},
	ActionPay: {
		from: []Status{StatusClosed},
		to:   StatusPaid,
		role: models.RoleCustomer,
	},
	ActionReassign: {
		from: []Status{StatusRejected},
		to:   StatusRequested,
		role: models.RoleAdmin,
	},
}

// Apply validates a single transition and returns the resulting status.
// A role mismatch is forbidden; a legal role acting from the wrong
// state is an invalid transition. Neither mutates anything.
func Apply(current Status, action Action, role string) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return current, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	if role != t.role {
		return current, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	for _, from := range t.from {
		if current == from {
			return t.to, nil
		}
	}

	return current, httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

func InitialStatus() Status {
	return StatusRequested
}

// CanEditPrice: the proposed price is negotiable only while the request
// sits in REQUESTED.
func CanEditPrice(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}
