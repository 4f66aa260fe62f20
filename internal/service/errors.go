package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "record does not exist" error of this package.
var ErrNotFound = errors.New("not found")

var (
	ErrNewsNotFound       = fmt.Errorf("news %w", ErrNotFound)
	ErrNewsSourceNotFound = fmt.Errorf("news source %w", ErrNotFound)
)
