package registrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// fileEntry is one registration in a registrations file. Provider, when set,
// names a CommonProvider whose settings are used for any field left empty.
type fileEntry struct {
	ClientRegistration
	Provider string `json:"provider,omitempty"`
}

type registrationsFile struct {
	Registrations []fileEntry `json:"registrations"`
}

// LoadFile reads registrations from a JSON file and returns them in an InMemoryRepo
func LoadFile(ctx context.Context, path string) (*InMemoryRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[registrations LoadFile] failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Load(ctx, f)
}

// Load decodes registrations, applies provider defaults and discovery, and validates them
func Load(ctx context.Context, r io.Reader) (*InMemoryRepo, error) {
	var file registrationsFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("[registrations Load] failed to decode registrations: %w", err)
	}

	regs := make([]*ClientRegistration, 0, len(file.Registrations))
	for i := range file.Registrations {
		reg, err := file.Registrations[i].resolve()
		if err != nil {
			return nil, err
		}
		if err := Discover(ctx, reg); err != nil {
			return nil, err
		}
		log.Debug().
			Str("registration_id", reg.RegistrationID).
			Str("grant_type", string(reg.AuthorizationGrantType)).
			Str("client_authentication_method", string(reg.ClientAuthenticationMethod)).
			Msg("Loaded client registration")
		regs = append(regs, reg)
	}
	return NewInMemoryRepo(regs...)
}

func (e *fileEntry) resolve() (*ClientRegistration, error) {
	if e.Provider == "" {
		return e.ClientRegistration.Copy(), nil
	}
	if !IsCommonProvider(e.Provider) {
		return nil, fmt.Errorf("%w (%s): unknown provider %q", ErrInvalidRegistration, e.RegistrationID, e.Provider)
	}

	reg := CommonProvider(e.Provider).Registration(e.RegistrationID, e.ClientID, e.ClientSecret, e.ProviderDetails.IssuerURI)
	if e.ClientAuthenticationMethod != "" {
		reg.ClientAuthenticationMethod = e.ClientAuthenticationMethod
	}
	if e.AuthorizationGrantType != "" {
		reg.AuthorizationGrantType = e.AuthorizationGrantType
	}
	if e.RedirectURITemplate != "" {
		reg.RedirectURITemplate = e.RedirectURITemplate
	}
	if len(e.Scopes) > 0 {
		reg.Scopes = append([]string(nil), e.Scopes...)
	}
	if e.ProviderDetails.AuthorizationURI != "" {
		reg.ProviderDetails.AuthorizationURI = e.ProviderDetails.AuthorizationURI
	}
	if e.ProviderDetails.TokenURI != "" {
		reg.ProviderDetails.TokenURI = e.ProviderDetails.TokenURI
	}
	if e.ClientName != "" {
		reg.ClientName = e.ClientName
	}
	return reg, nil
}
