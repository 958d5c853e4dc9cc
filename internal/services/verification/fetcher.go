package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docspace/internal/services/storage"
)

// ErrMissingDocument signals that a stored document reference was empty or
// the blob could not be retrieved.
var ErrMissingDocument = errors.New("document missing")

// resolveRef turns a stored document reference into a bucket and object
// path. Bare keys live in defaultBucket; full public URLs carry their own
// bucket between the object marker and the query string.
func resolveRef(ref, defaultBucket string) (bucket, path string) {
	if strings.Contains(ref, "/storage/v1/object/") {
		return storage.SplitKey(storage.ResolveKey(ref))
	}
	return defaultBucket, ref
}

// fetchDocument downloads the blob behind a stored document reference.
func fetchDocument(ctx context.Context, store storage.Service, ref, defaultBucket string) ([]byte, error) {
	if ref == "" {
		return nil, ErrMissingDocument
	}

	bucket, path := resolveRef(ref, defaultBucket)
	if path == "" {
		return nil, fmt.Errorf("%w: malformed reference %q", ErrMissingDocument, ref)
	}

	data, err := store.Download(ctx, bucket, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDocument, err)
	}
	return data, nil
}
