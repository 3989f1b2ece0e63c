package domain

import "fmt"

// Outstanding is the production-planning predicate: anything not Completed,
// Shipped included, still counts as demand.
func Outstanding(status Status) bool {
	return status != StatusCompleted
}

// TransitionPolicy decides whether an admin may move an order between statuses.
type TransitionPolicy interface {
	Check(from, to Status) error
}

// PermissiveTransitions accepts any move between known statuses.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Check(from, to Status) error {
	if !to.Valid() {
		return &ValidationError{Field: "status", Err: ErrInvalidStatus}
	}
	return nil
}

// StrictTransitions only allows staying put or stepping forward along
// Pending -> In Production -> Shipped -> Completed.
type StrictTransitions struct{}

var forwardSteps = map[Status]Status{
	StatusPending:      StatusInProduction,
	StatusInProduction: StatusShipped,
	StatusShipped:      StatusCompleted,
}

func (StrictTransitions) Check(from, to Status) error {
	if !to.Valid() {
		return &ValidationError{Field: "status", Err: ErrInvalidStatus}
	}
	if from == to {
		return nil
	}
	if next, ok := forwardSteps[from]; ok && next == to {
		return nil
	}
	return &ValidationError{
		Field: "status",
		Err:   fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to),
	}
}

var (
	_ TransitionPolicy = PermissiveTransitions{}
	_ TransitionPolicy = StrictTransitions{}
)
