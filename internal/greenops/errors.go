package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidUnit indicates an unrecognized carbon mass unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a negative carbon amount.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates an infinite or NaN input or result.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnknownEquivalency indicates an equivalency name outside AllEquivalencies.
	ErrUnknownEquivalency = constError("unknown equivalency")
)
