package showoff

import "errors"

var (
	// ErrNotFound is returned by collaborators when a resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownRoute is returned when a logical route name is not registered
	ErrUnknownRoute = errors.New("unknown route")
	// ErrDuplicateRoute is returned when a logical route name is registered twice
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrTemplateNotFound is returned when the templating engine cannot resolve a template
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidTemplate is returned when a listing template is not in the configured set
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrPageNotFound is returned when an album is unknown or a page index is out of range
	ErrPageNotFound = errors.New("page not found")
	// ErrImageNotFound is returned when a filename does not exist under an album
	ErrImageNotFound = errors.New("image not found")
	// ErrInvalidVariant is returned when a size token is not configured
	ErrInvalidVariant = errors.New("invalid variant")
	// ErrVariantNotFound is returned when a configured variant was never generated for an image
	ErrVariantNotFound = errors.New("variant not found")
	// ErrInvalidCredentials is returned when a login attempt fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsNotFound reports whether err is one of the kinds shown to end users as
// a plain "not found".
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrUnknownRoute,
		ErrInvalidTemplate,
		ErrPageNotFound,
		ErrImageNotFound,
		ErrInvalidVariant,
		ErrVariantNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
