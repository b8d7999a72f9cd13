package wb

import "errors"

var (
	// ErrAuthentication means the service rejected our credentials.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNetwork covers transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("request failed")

	// ErrMalformedResponse means the service returned a body we can't use.
	ErrMalformedResponse = errors.New("malformed response")
)
