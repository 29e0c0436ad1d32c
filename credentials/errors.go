package credentials

import "errors"

// ErrEmptySecret is returned when no server secret is configured.
var ErrEmptySecret = errors.New("server secret is empty")
