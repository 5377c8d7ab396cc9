package domain

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidKeyword  = errors.New("invalid keyword")
	ErrInvalidName     = errors.New("invalid name")
	ErrIndexOutOfRange = errors.New("index out of range")
)
