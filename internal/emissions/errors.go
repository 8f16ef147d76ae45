package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for category parsing and table loading.
var (
	// ErrUnknownCategory indicates a category name outside the fixed set.
	ErrUnknownCategory = constError("unknown emission category")

	// ErrInvalidFactor indicates a table row with a missing name or unit,
	// or a negative or non-finite value.
	ErrInvalidFactor = constError("invalid emission factor")

	// ErrDuplicateFactor indicates two rows sharing a name within one category.
	ErrDuplicateFactor = constError("duplicate emission factor")

	// ErrEmptyTable indicates a table document with no factor rows.
	ErrEmptyTable = constError("emission factor table is empty")
)
