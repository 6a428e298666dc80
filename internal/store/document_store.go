// Package store is the filesystem area holding uploaded study documents.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"pensaai/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for any upload that is not a PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrDocumentNotFound is returned when opening an unknown document.
	ErrDocumentNotFound = errors.New("document not found")
)

// acceptedExtensions is the reference upload policy: educational material
// arrives as PDF only.
var acceptedExtensions = map[string]bool{
	".pdf": true,
}

// DocumentStore keeps uploaded documents in a single directory. Writes go
// through a temp file and a rename, so List never sees a partial file, and
// saving an existing filename overwrites it (last write wins).
type DocumentStore struct {
	dir string

	mu sync.Mutex // serializes concurrent saves of the same filename
}

func NewDocumentStore(dir string) (*DocumentStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("document store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory failed: %w", err)
	}
	return &DocumentStore{dir: dir}, nil
}

// Dir returns the uploads directory path.
func (s *DocumentStore) Dir() string { return s.dir }

// Save stores the content of r under filename. The filename's base name
// becomes the DocumentID; path components in a hostile filename cannot
// escape the uploads directory.
func (s *DocumentStore) Save(filename string, r io.Reader) (model.DocumentID, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", ErrUnsupportedFormat
	}
	if !acceptedExtensions[strings.ToLower(filepath.Ext(name))] {
		return "", ErrUnsupportedFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp upload file failed: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write upload failed: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("flush upload failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close upload failed: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("publish upload failed: %w", err)
	}
	return model.DocumentID(name), nil
}

// List enumerates stored documents in sorted order. Temp files from
// in-flight saves are invisible here.
func (s *DocumentStore) List() ([]model.DocumentID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read uploads directory failed: %w", err)
	}
	var ids []model.DocumentID
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !acceptedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		ids = append(ids, model.DocumentID(name))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Open returns a reader over the raw document bytes.
func (s *DocumentStore) Open(id model.DocumentID) (io.ReadCloser, error) {
	name := filepath.Base(string(id))
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("open document failed: %w", err)
	}
	return f, nil
}
