package captable

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// Storage is the file-storage collaborator holding proof documents. The
// ledger treats references as opaque: a successful upload yields a
// reference string stored on the record, nothing more.
type Storage interface {
	// Upload stores the content and returns an opaque reference.
	Upload(name string, r io.Reader) (ref string, err error)
	// DownloadURL resolves a reference to a fetchable URL.
	DownloadURL(ref string) (string, error)
}

const (
	urlCacheExpiration      = 15 * time.Minute
	urlCacheCleanupInterval = 30 * time.Minute
)

// DirStorage stores proof documents under a local directory. Download
// URLs are memoized in a TTL cache so repeated reads of the same ledger
// do not hit the filesystem again.
type DirStorage struct {
	dir  string
	urls *cache.Cache
}

// NewDirStorage creates the directory if needed and returns the storage.
func NewDirStorage(dir string) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory %q: %w", dir, err)
	}
	return &DirStorage{
		dir:  dir,
		urls: cache.New(urlCacheExpiration, urlCacheCleanupInterval),
	}, nil
}

// Upload writes the content under a fresh reference. A failed upload
// leaves no file behind.
func (s *DirStorage) Upload(name string, r io.Reader) (string, error) {
	ref := uuid.NewString() + "-" + filepath.Base(name)
	path := filepath.Join(s.dir, ref)
	f, err := os.Create(path)
	if err != nil {
		return "", &UploadError{Name: name, Err: err}
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", &UploadError{Name: name, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", &UploadError{Name: name, Err: err}
	}
	return ref, nil
}

// DownloadURL resolves a reference to a file:// URL.
func (s *DirStorage) DownloadURL(ref string) (string, error) {
	if url, ok := s.urls.Get(ref); ok {
		return url.(string), nil
	}
	path := filepath.Join(s.dir, ref)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("unknown document reference %q: %w", ref, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve document %q: %w", ref, err)
	}
	url := "file://" + abs
	s.urls.Set(ref, url, cache.DefaultExpiration)
	return url, nil
}
