// Package gcs stores product images in a Google Cloud Storage bucket that is
// publicly readable through uniform bucket-level access.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

type ImageStore struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

func NewImageStore(client *storage.Client, bucket, publicBaseURL string) *ImageStore {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		base = defaultPublicBaseURL
	}
	return &ImageStore{
		client:        client,
		bucket:        strings.TrimSpace(bucket),
		publicBaseURL: base,
	}
}

// Put uploads data and returns the object's public URL.
func (s *ImageStore) Put(ctx context.Context, object, contentType string, data []byte) (string, error) {
	object = strings.TrimLeft(strings.TrimSpace(object), "/")
	if object == "" {
		return "", errors.New("gcs: object path is empty")
	}

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close %s: %w", object, err)
	}
	return s.PublicURL(object), nil
}

// Delete removes the object behind url. URLs that do not point into the
// store's bucket are ignored, as are objects that are already gone.
func (s *ImageStore) Delete(ctx context.Context, rawURL string) error {
	object, ok := s.objectFromURL(rawURL)
	if !ok {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs: delete %s: %w", object, err)
	}
	return nil
}

func (s *ImageStore) PublicURL(object string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, (&url.URL{Path: object}).EscapedPath())
}

func (s *ImageStore) objectFromURL(rawURL string) (string, bool) {
	prefix := s.publicBaseURL + "/" + s.bucket + "/"
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	object, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || object == "" {
		return "", false
	}
	return object, true
}
