package stores

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps objects as plain files under a root directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

// Path resolves a key to its absolute location under the root. Keys that
// escape the root collapse onto it.
func (l *LocalStore) Path(key string) string {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	return filepath.Join(l.root, clean)
}

func (l *LocalStore) Read(key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(l.Path(key))
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}

func (l *LocalStore) Write(key string, r io.Reader) (int64, error) {
	path := l.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (l *LocalStore) Delete(key string) error {
	return os.Remove(l.Path(key))
}

func (l *LocalStore) Exists(key string) (bool, error) {
	_, err := os.Stat(l.Path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (l *LocalStore) List(prefix string) ([]ObjectInfo, error) {
	var objs []ObjectInfo
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objs = append(objs, ObjectInfo{Key: key, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return objs, err
}

func (l *LocalStore) PublicURL(key string) string {
	return "/" + key
}
