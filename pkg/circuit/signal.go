package circuit

// Signal represents the value carried by a node output
type Signal int

const (
	X    Signal = iota // Not evaluated yet
	Zero               // Logic 0
	One                // Logic 1
)

// String returns a string representation of the signal
func (s Signal) String() string {
	switch s {
	case X:
		return "X"
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// Bit returns the signal as 0 or 1. X reads as 0.
func (s Signal) Bit() int {
	if s == One {
		return 1
	}
	return 0
}

// Not returns the logical complement. X stays X.
func (s Signal) Not() Signal {
	switch s {
	case Zero:
		return One
	case One:
		return Zero
	default:
		return X
	}
}

// IsAssigned returns true if the signal has a definite value (not X)
func (s Signal) IsAssigned() bool {
	return s == Zero || s == One
}

// FromBool converts a boolean into a signal
func FromBool(b bool) Signal {
	if b {
		return One
	}
	return Zero
}

// FromBit converts 0 into Zero and anything else into One
func FromBit(b int) Signal {
	return FromBool(b != 0)
}
