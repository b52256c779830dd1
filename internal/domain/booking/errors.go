package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotCancellable   = errors.New("booking cannot be cancelled")
)
