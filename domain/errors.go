package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidItem          = errors.New("invalid item")
	ErrEmptyReferenceSet    = errors.New("reference set is empty")
	ErrCandidateInReference = errors.New("candidate is already in the reference set")
	ErrProductNotFound      = errors.New("product not found")
	ErrCompareListFull      = errors.New("compare list is full")
	ErrAlreadyInCompareList = errors.New("product already in compare list")
	ErrUnknownActionType    = errors.New("unknown action type")
	ErrSnapshotNotFound     = errors.New("session snapshot not found")
)

// InvalidItemError reports the first field of an Item that failed validation.
type InvalidItemError struct {
	ItemID string
	Field  string
	Reason string
}

func (e *InvalidItemError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("invalid item: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid item %q: %s %s", e.ItemID, e.Field, e.Reason)
}

func (e *InvalidItemError) Is(target error) bool {
	return target == ErrInvalidItem
}
