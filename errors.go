package pvec

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrIndexOutOfRange is returned when an index falls outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOwnershipViolation is the parent of every transient ownership error.
	ErrOwnershipViolation = errors.New("transient ownership violation")

	// ErrUsedByNonOwner is returned when a transient is used by a session
	// other than the one that created it.
	ErrUsedByNonOwner = fmt.Errorf("%w: transient used by non-owner", ErrOwnershipViolation)

	// ErrUsedAfterFreeze is returned when a transient is used after Persistent.
	ErrUsedAfterFreeze = fmt.Errorf("%w: transient used after persistent", ErrOwnershipViolation)

	// ErrEmpty is returned when popping an empty vector.
	ErrEmpty = errors.New("vector is empty")
)

// IndexError reports an index outside the valid range of a vector.
//
// errors.Is(err, ErrIndexOutOfRange) reports true for every IndexError.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("pvec: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// OwnershipError reports a transient operation rejected by the ownership
// check. Kind is either ErrUsedByNonOwner or ErrUsedAfterFreeze.
type OwnershipError struct {
	Op     string
	Owner  uuid.UUID
	Caller uuid.UUID
	Kind   error
}

func (e *OwnershipError) Error() string {
	if errors.Is(e.Kind, ErrUsedAfterFreeze) {
		return fmt.Sprintf("pvec: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("pvec: %s: %v (owner %s, caller %s)", e.Op, e.Kind, e.Owner, e.Caller)
}

func (e *OwnershipError) Unwrap() error { return e.Kind }
