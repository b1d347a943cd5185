package e

import (
	"errors"
	"fmt"
)

var (
	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")
	ErrRequiredEnvVariable  = errors.New("required environment variable is missing")
)

// Wrap prefixes err with msg, keeping it matchable with errors.Is
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
