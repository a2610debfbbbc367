package ttlcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockTimeout    = 2 * time.Second
	lockRetryDelay = 25 * time.Millisecond
)

// FileStore keeps every entry in one JSON document mapping keys to
// serialized entries. Writes replace the document atomically, and a sibling
// lock file serializes access across processes.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore returns a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("cache file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &FileStore{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(key string) ([]byte, bool, error) {
	var (
		value string
		found bool
	)
	err := f.withLock(false, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		value, found = doc[key]
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (f *FileStore) Save(key string, value []byte) error {
	return f.withLock(true, func() error {
		doc, err := f.read()
		if err != nil {
			// An unreadable document is replaced rather than blocking writes.
			doc = make(map[string]string)
		}
		doc[key] = string(value)
		return f.write(doc)
	})
}

func (f *FileStore) Delete(key string) error {
	return f.withLock(true, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		if _, ok := doc[key]; !ok {
			return nil
		}
		delete(doc, key)
		return f.write(doc)
	})
}

func (f *FileStore) Keys() ([]string, error) {
	var keys []string
	err := f.withLock(false, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		keys = make([]string, 0, len(doc))
		for k := range doc {
			keys = append(keys, k)
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

func (f *FileStore) Clear() error {
	return f.withLock(true, func() error {
		return f.write(map[string]string{})
	})
}

func (f *FileStore) withLock(exclusive bool, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = f.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = f.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	if !ok {
		return errors.New("lock cache file: timed out")
	}
	defer func() { _ = f.lock.Unlock() }()
	return fn()
}

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	doc := make(map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	return doc, nil
}

func (f *FileStore) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
