package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// UploadsPrefix is the URL path the server serves disk artifacts under.
const UploadsPrefix = "/uploads/"

// DiskStore keeps artifacts as plain files in one directory, addressed as
// /uploads/<generated name>. The generated name starts with an xid so two
// uploads of the same filename never collide.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory artifacts are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Store(_ context.Context, filename string, data []byte) (string, error) {
	name := xid.New().String() + "-" + sanitizeName(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return UploadsPrefix + name, nil
}

func (s *DiskStore) Remove(_ context.Context, locator string) error {
	name, ok := strings.CutPrefix(locator, UploadsPrefix)
	if !ok || name == "" {
		return ErrUnknownLocator
	}
	// filepath.Base guards against traversal in a stored locator
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// ResolveURL is the identity for disk artifacts: the locator is already the
// path the static file server answers on.
func (s *DiskStore) ResolveURL(_ context.Context, locator string) (string, error) {
	if !strings.HasPrefix(locator, UploadsPrefix) {
		return "", ErrUnknownLocator
	}
	return locator, nil
}

func sanitizeName(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}
