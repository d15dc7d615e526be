package registrations

// Repo looks up client registrations by registration id.
// FindByRegistrationID returns ErrRegistrationNotFound when no registration exists.
type Repo interface {
	FindByRegistrationID(registrationID string) (*ClientRegistration, error)
}
