package dbbadger

import "errors"

var (
	// ErrPoolInvalidRequest ...
	ErrPoolInvalidRequest = errors.New("requested pool is null")
)
