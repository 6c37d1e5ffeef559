package notification

import "errors"

// ErrNotFound is returned when the addressed notification does not exist.
var ErrNotFound = errors.New("notification not found")
