package wb

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// renewBefore is how long before expiry a cached token is replaced.
const renewBefore = time.Minute

// Authenticator signs short-lived JSON Web Tokens with the API key.
// The token is safe to hand to other processes since it does not expose
// the key itself.
type Authenticator struct {
	clientID string
	apiKey   []byte
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewAuthenticator returns an Authenticator whose tokens are valid for ttl.
func NewAuthenticator(clientID, apiKey string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		clientID: clientID,
		apiKey:   []byte(apiKey),
		ttl:      ttl,
		now:      time.Now,
	}
}

// ClientID returns the client ID the tokens are issued for.
func (a *Authenticator) ClientID() string {
	return a.clientID
}

// Token returns a signed token, reusing the previous one until it is
// close to expiring.
func (a *Authenticator) Token() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	if a.token != "" && now.Add(renewBefore).Before(a.expires) {
		return a.token, nil
	}
	if a.clientID == "" || len(a.apiKey) == 0 {
		return "", fmt.Errorf("%w: missing client ID or API key", ErrAuthentication)
	}
	expires := now.Add(a.ttl)
	claims := jwt.MapClaims{
		"client_id": a.clientID,
		"iat":       now.Unix(),
		"exp":       expires.Unix(),
		"jti":       uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: signing token: %w", ErrAuthentication, err)
	}
	a.token, a.expires = signed, expires
	return signed, nil
}
