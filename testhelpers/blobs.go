package testhelpers

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/UShishir5355t/real-estate-mvp/storage"
)

const BlobBaseURL = "https://blobs.test/"

// BlobStore keeps uploads in memory and records every delete attempt.
type BlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	Deleted []string

	// FailUploadFor fails uploads whose object path ends with the given name.
	FailUploadFor map[string]error
	// FailDeleteFor fails deletes of the given URL.
	FailDeleteFor map[string]error
}

var _ storage.BlobStore = (*BlobStore)(nil)

func NewBlobStore() *BlobStore {
	return &BlobStore{
		objects:       map[string][]byte{},
		FailUploadFor: map[string]error{},
		FailDeleteFor: map[string]error{},
	}
}

func (b *BlobStore) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for name, err := range b.FailUploadFor {
		if strings.HasSuffix(objectPath, "_"+name) {
			return "", err
		}
	}
	b.objects[objectPath] = data
	return BlobBaseURL + objectPath, nil
}

func (b *BlobStore) Delete(ctx context.Context, ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Deleted = append(b.Deleted, ref)
	if err := b.FailDeleteFor[ref]; err != nil {
		return err
	}
	key := strings.TrimPrefix(ref, BlobBaseURL)
	if _, ok := b.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(b.objects, key)
	return nil
}

// Seed stores an object and returns its URL.
func (b *BlobStore) Seed(objectPath string, data []byte) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectPath] = data
	return BlobBaseURL + objectPath
}

func (b *BlobStore) Has(url string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[strings.TrimPrefix(url, BlobBaseURL)]
	return ok
}

func (b *BlobStore) Content(url string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.objects[strings.TrimPrefix(url, BlobBaseURL)]
}

func (b *BlobStore) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}
