package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidContainer = errors.New("not a valid save container")
	ErrBlockMissing     = errors.New("save block missing")
	ErrEncode           = errors.New("encode save container")
	ErrSessionNotFound  = errors.New("save session not found")
	ErrInvalidChange    = errors.New("invalid change")
	ErrStoreFull        = errors.New("session store rejected entry")
	ErrTaskPanicked     = errors.New("offloaded task panicked")
)

// DecodeError reports why a blob or one of its blocks could not be decoded.
// It matches ErrInvalidContainer or ErrBlockMissing through errors.Is.
type DecodeError struct {
	Block BlockKey
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Block == 0 {
		return fmt.Sprintf("decode save: %v", e.Err)
	}
	return fmt.Sprintf("decode save block %s: %v", e.Block, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if errors.Is(e.Err, ErrBlockMissing) || errors.Is(e.Err, ErrInvalidContainer) {
		return []error{e.Err}
	}
	return []error{ErrInvalidContainer, e.Err}
}

// ValidationError is a malformed entry in a client change-set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid change %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidChange
}
