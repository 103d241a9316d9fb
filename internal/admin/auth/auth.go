// Package auth decides who may use the admin surface: a verified Firebase ID
// token whose e-mail is on the ADMIN_EMAILS allowlist.
//
// The gateway verifies the token and forwards the e-mail to the storefront as
// gRPC metadata; the storefront re-checks it against the same allowlist.
package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

const MetadataKey = "x-admin-email"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// TokenVerifier is satisfied by *firebase.google.com/go/v4/auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type Allowlist struct {
	emails map[string]struct{}
}

func NewAllowlist(emails []string) *Allowlist {
	a := &Allowlist{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normalize(e); e != "" {
			a.emails[e] = struct{}{}
		}
	}
	return a
}

func (a *Allowlist) Allowed(email string) bool {
	if a == nil {
		return false
	}
	_, ok := a.emails[normalize(email)]
	return ok
}

func (a *Allowlist) Len() int {
	if a == nil {
		return 0
	}
	return len(a.emails)
}

// Check returns ErrUnauthenticated for a blank e-mail and ErrForbidden for
// one that is not listed.
func (a *Allowlist) Check(email string) error {
	if normalize(email) == "" {
		return ErrUnauthenticated
	}
	if !a.Allowed(email) {
		return ErrForbidden
	}
	return nil
}

// Authenticate verifies idToken and returns the allowlisted e-mail it carries.
// The e-mail must be verified by Firebase; anyone can sign up with an
// unverified address.
func Authenticate(ctx context.Context, v TokenVerifier, allow *Allowlist, idToken string) (string, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" || v == nil {
		return "", ErrUnauthenticated
	}
	tok, err := v.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.Join(ErrUnauthenticated, err)
	}
	if tok == nil {
		return "", ErrUnauthenticated
	}

	email, _ := tok.Claims["email"].(string)
	if err := allow.Check(email); err != nil {
		return "", err
	}
	if verified, _ := tok.Claims["email_verified"].(bool); !verified {
		return "", ErrForbidden
	}
	return normalize(email), nil
}

type ctxKey struct{}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, email)
}

func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxKey{}).(string)
	return email, ok && email != ""
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
