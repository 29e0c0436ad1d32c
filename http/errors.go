package http

import "errors"

// ErrUnsafeRedirect is returned when a login redirect target leaves the viewer.
var ErrUnsafeRedirect = errors.New("unsafe redirect target")
