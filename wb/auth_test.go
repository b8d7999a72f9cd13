package wb

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthenticator_Token(t *testing.T) {
	a := NewAuthenticator("client-1", "secret", time.Hour)
	issued := time.Now().Truncate(time.Second)
	a.now = func() time.Time { return issued }

	signed, err := a.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (any, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return issued }))
	if err != nil {
		t.Fatalf("ParseWithClaims() error = %v", err)
	}
	if !tok.Valid {
		t.Fatal("token not valid")
	}
	if claims["client_id"] != "client-1" {
		t.Errorf("client_id = %v, want client-1", claims["client_id"])
	}
	if iat, _ := claims.GetIssuedAt(); iat == nil || !iat.Time.Equal(issued) {
		t.Errorf("iat = %v, want %v", iat, issued)
	}
	if exp, _ := claims.GetExpirationTime(); exp == nil || !exp.Time.Equal(issued.Add(time.Hour)) {
		t.Errorf("exp = %v, want %v", exp, issued.Add(time.Hour))
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Error("jti is empty")
	}
}

func TestAuthenticator_TokenWrongKey(t *testing.T) {
	a := NewAuthenticator("client-1", "secret", time.Hour)
	signed, err := a.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	_, err = jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte("not-the-secret"), nil
	})
	if err == nil {
		t.Error("token verified with the wrong key")
	}
}

func TestAuthenticator_Renewal(t *testing.T) {
	a := NewAuthenticator("client-1", "secret", 10*time.Minute)
	now := time.Unix(1731283200, 0)
	a.now = func() time.Time { return now }

	first, err := a.Token()
	if err != nil {
		t.Fatal(err)
	}
	now = now.Add(5 * time.Minute)
	second, err := a.Token()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("token renewed while still fresh")
	}
	now = now.Add(4*time.Minute + 30*time.Second)
	third, err := a.Token()
	if err != nil {
		t.Fatal(err)
	}
	if third == second {
		t.Error("token not renewed close to expiry")
	}
}

func TestAuthenticator_MissingCredentials(t *testing.T) {
	a := NewAuthenticator("", "", time.Hour)
	if _, err := a.Token(); !errors.Is(err, ErrAuthentication) {
		t.Errorf("Token() error = %v, want ErrAuthentication", err)
	}
}
