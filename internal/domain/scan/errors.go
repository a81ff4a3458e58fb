package scan

import "errors"

var (
	ErrScanNotFound     = errors.New("scan event not found")
	ErrDuplicateScan    = errors.New("scan event already recorded for this employee and timestamp")
	ErrInvalidDirection = errors.New("invalid scan direction")
)
