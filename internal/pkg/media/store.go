// Package media copies captured photos and voice clips into app-owned
// directories and hands back the file URI the data layer stores.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	photosDir     = "photos"
	recordingsDir = "recordings"

	defaultPhotoExt = "jpg"
	recordingExt    = "m4a"
	fileScheme      = "file://"
)

var photoExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true}

// Store owns a root directory with photos/ and recordings/ below it.
type Store struct {
	root   string
	logger *zap.Logger
	newID  func() string
}

// NewStore resolves root to an absolute path so stored URIs stay valid
// regardless of the working directory.
func NewStore(root string, logger *zap.Logger) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media root: %w", err)
	}
	return &Store{
		root:   abs,
		logger: logger,
		newID:  uuid.NewString,
	}, nil
}

// ImportPhoto copies src under photos/ and returns its file URI. Extensions
// other than jpg, jpeg, png and webp are stored as jpg.
func (s *Store) ImportPhoto(src string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(stripQuery(src)), "."))
	if !photoExts[ext] {
		ext = defaultPhotoExt
	}
	return s.importFile(src, photosDir, "photo_"+s.newID()+"."+ext)
}

// ImportRecording copies src under recordings/ and returns its file URI.
func (s *Store) ImportRecording(src string) (string, error) {
	return s.importFile(src, recordingsDir, "recording_"+s.newID()+"."+recordingExt)
}

// Remove deletes a file previously returned by this store. Missing files are
// not an error; URIs outside the root are refused.
func (s *Store) Remove(uri string) error {
	path := PathFromURI(uri)
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %q outside media root", uri)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}

func (s *Store) importFile(src, dir, name string) (string, error) {
	destDir := filepath.Join(s.root, dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	in, err := os.Open(PathFromURI(src))
	if err != nil {
		return "", fmt.Errorf("failed to open media source: %w", err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("failed to copy media file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	s.logger.Debug("Media imported", zap.String("source", src), zap.String("dest", dest))
	return EnsureFileURI(dest), nil
}

// EnsureFileURI prefixes bare paths with file://. URIs that already carry a
// scheme are returned unchanged.
func EnsureFileURI(uri string) string {
	if strings.Contains(uri, "://") {
		return uri
	}
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	return fileScheme + uri
}

// PathFromURI strips a file:// prefix.
func PathFromURI(uri string) string {
	return strings.TrimPrefix(uri, fileScheme)
}

func stripQuery(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}
	return s
}
