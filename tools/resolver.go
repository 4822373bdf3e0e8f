package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"whatsapp-greenapi-mcp/models"
	"whatsapp-greenapi-mcp/utils"
)

var (
	// ErrContactNotFound is matched by every ContactNotFoundError
	ErrContactNotFound = errors.New("contact not found")
	// ErrContactsFetch means the gateway refused the contact list
	ErrContactsFetch = errors.New("failed to fetch contact list")
	// ErrEmptyReference is returned for a blank reference, which would
	// otherwise match every name
	ErrEmptyReference = errors.New("contact reference must not be empty")
)

// ContactNotFoundError names the reference no contact matched
type ContactNotFoundError struct {
	Reference string
}

func (e *ContactNotFoundError) Error() string {
	return fmt.Sprintf("contact '%s' not found", e.Reference)
}

// Is makes errors.Is(err, ErrContactNotFound) hold
func (e *ContactNotFoundError) Is(target error) bool {
	return target == ErrContactNotFound
}

// Resolver turns a contact reference into a chat id
type Resolver struct {
	gateway Gateway
}

// NewResolver creates a resolver backed by gateway
func NewResolver(gateway Gateway) *Resolver {
	return &Resolver{gateway: gateway}
}

// Resolve maps ref to a chat id. Digits become "<digits>@c.us" and suffixed ids
// pass through, both without a network call. Anything else is matched as a
// case-insensitive substring of the contact names, first match in gateway
// order. The contact list is fetched on every call.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyReference
	}
	if utils.IsDigits(ref) {
		return utils.ChatIDFromPhone(ref), nil
	}
	if utils.IsChatID(ref) {
		return ref, nil
	}

	resp, err := r.gateway.GetContacts(ctx)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("%w: %s", ErrContactsFetch, resp.String())
	}

	var contacts []models.Contact
	if err := resp.Decode(&contacts); err != nil {
		return "", err
	}

	needle := strings.ToLower(ref)
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c.ID, nil
		}
	}
	return "", &ContactNotFoundError{Reference: ref}
}
