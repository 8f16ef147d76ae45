package activity

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidCategory indicates a category hint outside the fixed set.
// Unmatched text is never an error; only a bad hint is.
var ErrInvalidCategory = constError("invalid category")
