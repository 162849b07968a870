package circuit

import "errors"

var (
	// ErrInvalidSlot is returned when a slot index is outside the gate's arity
	ErrInvalidSlot = errors.New("invalid input slot")

	// ErrUnknownGateType is returned for gate types without a truth function
	ErrUnknownGateType = errors.New("unknown gate type")
)
