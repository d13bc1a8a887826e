package domain

import "errors"

var (
	ErrLocked         = errors.New("screen is locked: permission not granted")
	ErrStopped        = errors.New("screen controller is not running")
	ErrInvalidPayload = errors.New("invalid telemetry payload")
)
