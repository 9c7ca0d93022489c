package services

import (
	"backend/entity"
)

// allowedTransitions is the full lifecycle table. Anything not listed
// is rejected outright. cancelled is reachable from every non-terminal
// state, handled in CanTransition rather than enumerated here.
var allowedTransitions = map[string][]string{
	entity.StatusPending:   {entity.StatusConfirmed, entity.StatusAssigned},
	entity.StatusConfirmed: {entity.StatusAssigned},
	entity.StatusAssigned:  {entity.StatusPickedUp},
	entity.StatusPickedUp:  {entity.StatusInTransit, entity.StatusDelivered},
	entity.StatusInTransit: {entity.StatusDelivered},
}

// partnerTargets are the only statuses a partner may move an order to,
// and only on an order assigned to them. Everything else is admin-only.
var partnerTargets = map[string]bool{
	entity.StatusPickedUp:  true,
	entity.StatusDelivered: true,
}

func ValidStatus(s string) bool {
	switch s {
	case entity.StatusPending, entity.StatusConfirmed, entity.StatusAssigned,
		entity.StatusPickedUp, entity.StatusInTransit, entity.StatusDelivered,
		entity.StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from → to is in the allowed table.
func CanTransition(from, to string) bool {
	if to == entity.StatusCancelled {
		return !entity.Terminal(from)
	}
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// PartnerCanTransition additionally applies the role restriction.
func PartnerCanTransition(from, to string) bool {
	return partnerTargets[to] && CanTransition(from, to)
}
