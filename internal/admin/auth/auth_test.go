package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	email, ok := f[idToken]
	if !ok {
		return nil, errors.New("token expired")
	}
	return &fbauth.Token{UID: "uid-" + idToken, Claims: map[string]interface{}{"email": email, "email_verified": true}}, nil
}

type claimsVerifier map[string]interface{}

func (c claimsVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return &fbauth.Token{UID: "uid-" + idToken, Claims: c}, nil
}

func TestAllowlist(t *testing.T) {
	a := NewAllowlist([]string{" Owner@Shop.pk ", "", "staff@shop.pk"})

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Allowed("owner@shop.pk"))
	assert.True(t, a.Allowed("OWNER@SHOP.PK"))
	assert.False(t, a.Allowed("someone@else.pk"))
	assert.ErrorIs(t, a.Check(""), ErrUnauthenticated)
	assert.ErrorIs(t, a.Check("x@y.z"), ErrForbidden)
	assert.NoError(t, a.Check("staff@shop.pk"))

	var nilList *Allowlist
	assert.False(t, nilList.Allowed("owner@shop.pk"))
}

func TestAuthenticate(t *testing.T) {
	v := fakeVerifier{"good": "Owner@shop.pk", "outsider": "x@y.z"}
	allow := NewAllowlist([]string{"owner@shop.pk"})
	ctx := context.Background()

	email, err := Authenticate(ctx, v, allow, " good ")
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.pk", email)

	_, err = Authenticate(ctx, v, allow, "outsider")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = Authenticate(ctx, v, allow, "stale")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = Authenticate(ctx, v, allow, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateRequiresVerifiedEmail(t *testing.T) {
	allow := NewAllowlist([]string{"owner@shop.pk"})
	ctx := context.Background()

	cases := []struct {
		name   string
		claims claimsVerifier
	}{
		{"unverified", claimsVerifier{"email": "owner@shop.pk", "email_verified": false}},
		{"claim missing", claimsVerifier{"email": "owner@shop.pk"}},
		{"claim not a bool", claimsVerifier{"email": "owner@shop.pk", "email_verified": "true"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := Authenticate(ctx, tc.claims, allow, "tok")
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Empty(t, email)
		})
	}

	email, err := Authenticate(ctx, claimsVerifier{"email": "owner@shop.pk", "email_verified": true}, allow, "tok")
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.pk", email)
}

func TestMiddleware(t *testing.T) {
	v := fakeVerifier{"good": "owner@shop.pk", "outsider": "x@y.z"}
	mw := NewMiddleware(v, NewAllowlist([]string{"owner@shop.pk"}), nil, nil)

	var seen string
	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer stale", http.StatusUnauthorized},
		{"not an admin", "Bearer outsider", http.StatusForbidden},
		{"admin", "Bearer good", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/listings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
	assert.Equal(t, "owner@shop.pk", seen)
}

func TestMiddlewareWithoutVerifier(t *testing.T) {
	mw := NewMiddleware(nil, NewAllowlist(nil), nil, nil)
	rec := httptest.NewRecorder()
	mw.Handler(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnaryServerInterceptor(t *testing.T) {
	icpt := UnaryServerInterceptor(NewAllowlist([]string{"owner@shop.pk"}), "phonestore.admin.v1.AdminService")

	var gotEmail string
	handler := func(ctx context.Context, req any) (any, error) {
		gotEmail, _ = EmailFromContext(ctx)
		return "ok", nil
	}
	admin := &grpc.UnaryServerInfo{FullMethod: "/phonestore.admin.v1.AdminService/DeleteProduct"}
	public := &grpc.UnaryServerInfo{FullMethod: "/phonestore.catalog.v1.CatalogService/Search"}

	_, err := icpt(context.Background(), nil, public, handler)
	require.NoError(t, err)

	_, err = icpt(context.Background(), nil, admin, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataKey, "x@y.z"))
	_, err = icpt(ctx, nil, admin, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataKey, "Owner@Shop.pk"))
	_, err = icpt(ctx, nil, admin, handler)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.pk", gotEmail)
}

func TestOutgoingContext(t *testing.T) {
	ctx := OutgoingContext(context.Background())
	_, ok := metadata.FromOutgoingContext(ctx)
	assert.False(t, ok)

	ctx = OutgoingContext(WithEmail(context.Background(), "owner@shop.pk"))
	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"owner@shop.pk"}, md.Get(MetadataKey))
}
