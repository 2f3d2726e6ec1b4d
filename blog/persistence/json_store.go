package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masterblog/masterblog/blog/domain"
)

var _ domain.PostStore = (*JSONPostStore)(nil)

// JSONPostStore implements domain.PostStore on top of a single JSON file
// holding the full post collection as an indented array. There is no caching;
// every Load re-reads the file. This is deliberate given the expected data
// volume and keeps the file the single source of truth.
type JSONPostStore struct {
	path string
}

// NewJSONPostStore creates a store backed by the file at path.
func NewJSONPostStore(path string) *JSONPostStore {
	return &JSONPostStore{path: path}
}

// Load reads the persisted post collection.
// A missing or unreadable file surfaces as domain.ErrStoreUnavailable so
// callers can decide to start from an empty collection.
func (s *JSONPostStore) Load(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no data file at %s", domain.ErrStoreUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}

	// Older documents may lack the comments key; keep the slice non-nil so
	// it always serializes as [].
	for i := range posts {
		if posts[i].Comments == nil {
			posts[i].Comments = []string{}
		}
	}

	return posts, nil
}

// Save overwrites the persisted document with the given collection.
// The write goes to a temp file in the same directory which is then renamed
// over the target, so a concurrent reader never sees a partial document.
func (s *JSONPostStore) Save(ctx context.Context, posts []domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	data, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding posts: %v", domain.ErrStoreWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", domain.ErrStoreWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", domain.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", domain.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", domain.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", domain.ErrStoreWrite, s.path, err)
	}

	return nil
}
