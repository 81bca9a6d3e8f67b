package db

import "errors"

// NotFoundError is returned when a key has no value.
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func newNotFoundError(key string) *NotFoundError {
	return &NotFoundError{
		Key:     key,
		Message: "key " + key + " not found",
	}
}

func IsNotFoundError(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
