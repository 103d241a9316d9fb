package secrets

import (
	"context"
	"errors"
	"testing"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	names []string
	data  string
	err   error
}

func (f *fakeAccessor) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(f.data)},
	}, nil
}

func TestLookup(t *testing.T) {
	fake := &fakeAccessor{data: "  s3cret\n"}
	r := &Resolver{access: fake.AccessSecretVersion, projectID: "shop"}

	v, err := r.Lookup(context.Background(), "db-password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	_, err = r.Lookup(context.Background(), "projects/other/secrets/x/versions/3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"projects/shop/secrets/db-password/versions/latest",
		"projects/other/secrets/x/versions/3",
	}, fake.names)
}

func TestResolve(t *testing.T) {
	fake := &fakeAccessor{err: errors.New("denied")}
	r := &Resolver{access: fake.AccessSecretVersion, projectID: "shop"}

	v, err := r.Resolve(context.Background(), "plain", "")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
	assert.Empty(t, fake.names)

	_, err = r.Resolve(context.Background(), "plain", "key")
	require.Error(t, err)
}

func TestLookupNeedsProject(t *testing.T) {
	r := &Resolver{access: (&fakeAccessor{}).AccessSecretVersion}
	_, err := r.Lookup(context.Background(), "bare")
	require.Error(t, err)

	var nilResolver *Resolver
	_, err = nilResolver.Lookup(context.Background(), "bare")
	require.Error(t, err)
}
