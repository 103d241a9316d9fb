// Package secrets resolves configuration values from Google Secret Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

type accessFunc func(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error)

type Resolver struct {
	access    accessFunc
	projectID string
	closeFn   func() error
}

func NewResolver(ctx context.Context, projectID, credentialsFile string) (*Resolver, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secretmanager client: %w", err)
	}
	access := func(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
		return client.AccessSecretVersion(ctx, req)
	}
	return &Resolver{access: access, projectID: projectID, closeFn: client.Close}, nil
}

func (r *Resolver) Close() error {
	if r == nil || r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// Lookup returns the trimmed payload of a secret. ref may be a full resource
// name ("projects/p/secrets/s/versions/v") or a bare secret id, in which case
// the latest version in the resolver's project is used.
func (r *Resolver) Lookup(ctx context.Context, ref string) (string, error) {
	if r == nil || r.access == nil {
		return "", errors.New("secrets: resolver not configured")
	}
	name, err := r.resourceName(ref)
	if err != nil {
		return "", err
	}

	resp, err := r.access(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secrets: access %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secrets: empty payload for %s", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

// Resolve returns plain when ref is empty, otherwise the secret value.
func (r *Resolver) Resolve(ctx context.Context, plain, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return plain, nil
	}
	return r.Lookup(ctx, ref)
}

func (r *Resolver) resourceName(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("secrets: empty reference")
	}
	if strings.HasPrefix(ref, "projects/") {
		return ref, nil
	}
	if r.projectID == "" {
		return "", fmt.Errorf("secrets: project id required for %q", ref)
	}
	return "projects/" + r.projectID + "/secrets/" + ref + "/versions/latest", nil
}
