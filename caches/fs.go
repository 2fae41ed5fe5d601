package caches

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fsEntry struct {
	ExpiresAt int64  `json:"expires_at"`
	Data      []byte `json:"data"`
}

// FS stores each entry as a JSON file in a directory. It works with any
// afero filesystem so it is possible to use it with afero.NewOsFs() for
// persistent caches and afero.NewMemMapFs() for tests.
//
// Several processes can share the same directory: files are written
// into a temporary file first and then renamed.
type FS struct {
	fs  afero.Fs
	dir string
}

func (f *FS) Get(_ context.Context, key string) ([]byte, bool, error) {
	content, err := afero.ReadFile(f.fs, f.path(key))

	switch {
	case os.IsNotExist(err):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("cannot read cache file: %w", err)
	}

	entry := fsEntry{}

	if err := json.Unmarshal(content, &entry); err != nil {
		return nil, false, fmt.Errorf("cannot parse cache file: %w", err)
	}

	if entry.ExpiresAt != 0 && time.Now().UnixNano() > entry.ExpiresAt {
		f.fs.Remove(f.path(key)) // nolint: errcheck

		return nil, false, nil
	}

	return entry.Data, true, nil
}

func (f *FS) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := fsEntry{
		Data: value,
	}

	if expiration := expiresAt(time.Now(), ttl); !expiration.IsZero() {
		entry.ExpiresAt = expiration.UnixNano()
	}

	content, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("cannot encode cache entry: %w", err)
	}

	tempFile, err := afero.TempFile(f.fs, f.dir, "tmp-")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}

	defer f.fs.Remove(tempFile.Name()) // nolint: errcheck

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()

		return fmt.Errorf("cannot write temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("cannot close temporary file: %w", err)
	}

	if err := f.fs.Rename(tempFile.Name(), f.path(key)); err != nil {
		return fmt.Errorf("cannot move cache file: %w", err)
	}

	return nil
}

func (f *FS) Delete(_ context.Context, key string) (bool, error) {
	return f.remove(f.path(key))
}

func (f *FS) DeleteByPrefix(_ context.Context, prefix string) (bool, error) {
	infos, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return false, fmt.Errorf("cannot list cache directory: %w", err)
	}

	escapedPrefix := url.PathEscape(prefix)
	removed := false

	for _, v := range infos {
		if v.IsDir() || !strings.HasPrefix(v.Name(), escapedPrefix) || strings.HasPrefix(v.Name(), "tmp-") {
			continue
		}

		ok, err := f.remove(filepath.Join(f.dir, v.Name()))
		if err != nil {
			return removed, err
		}

		removed = ok || removed
	}

	return removed, nil
}

func (f *FS) remove(path string) (bool, error) {
	err := f.fs.Remove(path)

	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cannot remove cache file: %w", err)
	}

	return true, nil
}

// path escapes a key so it is always a single file name within a
// cache directory. Escaping is done byte by byte so escaped prefix of a
// key is a prefix of escaped key.
func (f *FS) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

// NewFS creates a cache in given directory of filesystem. Directory is
// created if it does not exist.
func NewFS(fs afero.Fs, dir string) (*FS, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory: %w", err)
	}

	return &FS{
		fs:  fs,
		dir: dir,
	}, nil
}
