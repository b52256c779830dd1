package branch

import "errors"

var (
	ErrSettingsNotFound = errors.New("branch settings not found")
	ErrInvalidSettings  = errors.New("invalid branch settings")
)
