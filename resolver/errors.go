package resolver

import "errors"

var (
	// ErrUnknownRegistration means the registration id has no client registration
	ErrUnknownRegistration = errors.New("unknown client registration")
	// ErrInvalidGrantType means the registration uses a grant other than authorization_code or implicit
	ErrInvalidGrantType = errors.New("invalid authorization grant type")
	// ErrTemplateExpansion means the registration's redirect uri template cannot be expanded
	ErrTemplateExpansion = errors.New("redirect uri template expansion failed")
)
