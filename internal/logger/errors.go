package logger

import "errors"

var (
	// ErrServiceNameIsEmpty is returned when the service name is not configured.
	ErrServiceNameIsEmpty = errors.New("service name is empty")

	// ErrAppNameIsEmpty is returned when the app name is not configured.
	ErrAppNameIsEmpty = errors.New("app name is empty")
)
