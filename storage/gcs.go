package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const firebaseTokenKey = "firebaseStorageDownloadTokens"

// GCSBlobStore keeps images in a Cloud Storage bucket (the bucket behind
// Firebase Storage) and hands out Firebase-style download URLs.
type GCSBlobStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSBlobStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSBlobStore, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSBlobStore{client: client, bucket: bucket}, nil
}

func (s *GCSBlobStore) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error) {
	token := uuid.NewString()
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{firebaseTokenKey: token}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return DownloadURL(s.bucket, objectPath, token), nil
}

func (s *GCSBlobStore) Delete(ctx context.Context, ref string) error {
	objectPath, err := ParseObjectRef(s.bucket, ref)
	if err != nil {
		return err
	}
	err = s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *GCSBlobStore) Close() error {
	return s.client.Close()
}

func DownloadURL(bucket, objectPath, token string) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		bucket, url.PathEscape(objectPath))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

// ParseObjectRef resolves a Firebase download URL, a gs:// URL, a
// storage.googleapis.com URL or a bare object path to an object path in bucket.
func ParseObjectRef(bucket, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrInvalidRef
	}
	if !strings.Contains(ref, "://") {
		return strings.TrimPrefix(ref, "/"), nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}

	switch {
	case u.Scheme == "gs":
		if u.Host != bucket {
			return "", fmt.Errorf("%w: bucket %q", ErrInvalidRef, u.Host)
		}
		return nonEmpty(strings.TrimPrefix(u.Path, "/"))

	case u.Host == "firebasestorage.googleapis.com":
		prefix := "/v0/b/" + bucket + "/o/"
		escaped := u.EscapedPath()
		if !strings.HasPrefix(escaped, prefix) {
			return "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
		}
		p, err := url.PathUnescape(strings.TrimPrefix(escaped, prefix))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidRef, err)
		}
		return nonEmpty(p)

	case u.Host == "storage.googleapis.com":
		prefix := "/" + bucket + "/"
		if !strings.HasPrefix(u.Path, prefix) {
			return "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
		}
		return nonEmpty(strings.TrimPrefix(u.Path, prefix))
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
}

func nonEmpty(p string) (string, error) {
	if p == "" {
		return "", ErrInvalidRef
	}
	return p, nil
}
