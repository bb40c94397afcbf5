package usecase

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoRowsFound    = errors.New("no rows found in payload")
	ErrStorageFailure = errors.New("storage failure")
)
