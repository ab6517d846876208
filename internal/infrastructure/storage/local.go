package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

const maxPhotoSize = 2 << 20 // 2MB

// LocalPhotoStore keeps profile photos on the local filesystem under
// <dir>/photos and serves them at /uploads/photos/<name>.
type LocalPhotoStore struct {
	dir string
	log zerolog.Logger
}

func NewLocalPhotoStore(dir string, log zerolog.Logger) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "photos"), 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &LocalPhotoStore{dir: dir, log: log}, nil
}

// Save validates the upload and writes it under a random filename. The file
// is removed again when the write fails partway.
func (s *LocalPhotoStore) Save(ctx context.Context, photo *ports.PhotoUpload) (string, error) {
	ext, err := photoExtension(photo.ContentType)
	if err != nil {
		return "", err
	}
	if photo.Size > maxPhotoSize {
		return "", domain.ErrPhotoSize
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, "photos", name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	// Declared size is client-supplied, so cap the actual bytes too.
	written, err := io.Copy(f, io.LimitReader(photo.Content, maxPhotoSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > maxPhotoSize {
		err = domain.ErrPhotoSize
	}
	if err != nil {
		_ = os.Remove(path)
		if err == domain.ErrPhotoSize {
			return "", err
		}
		return "", fmt.Errorf("write photo: %w", err)
	}

	return "/uploads/photos/" + name, nil
}

// Remove deletes the file behind a previously returned web path.
func (s *LocalPhotoStore) Remove(webPath string) {
	name, ok := strings.CutPrefix(webPath, "/uploads/photos/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return
	}
	path := filepath.Join(s.dir, "photos", name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to remove photo")
	}
}

func photoExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	default:
		return "", domain.ErrPhotoType
	}
}
