// Package storage uploads listing images to an object store and removes them
// again. Objects are addressed by path; uploads return a URL clients can fetch.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRef = errors.New("invalid object reference")
	ErrNotFound   = errors.New("object not found")
)

type BlobStore interface {
	// Upload writes body at objectPath and returns its download URL.
	Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error)
	// Delete removes the object named by a download URL or an object path.
	Delete(ctx context.Context, ref string) error
}

// File is one image handed to the gateway for upload.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// ObjectPath names a new object as prefix/<unix millis>_<random>_<file name>.
// Files from one batch get distinct names even when they share a file name.
func ObjectPath(prefix, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%d_%s_%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], base)
}
