package stores

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Store is a flat keyed blob store. Keys use forward slashes regardless of
// the backing implementation.
type Store interface {
	Read(key string) (io.ReadCloser, int64, error)
	Write(key string, r io.Reader) (int64, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	List(prefix string) ([]ObjectInfo, error)
	PublicURL(key string) string
}

// NewStore creates the store selected by backend name.
func NewStore(backend, localRoot string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", "local":
		return NewLocalStore(localRoot)
	case "minio":
		return NewMinioStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
