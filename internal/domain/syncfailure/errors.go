package syncfailure

import "errors"

var (
	ErrEventNotFound   = errors.New("sync failure event not found")
	ErrAlreadyResolved = errors.New("sync failure event already resolved")
)
