package food

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodnest/internal/config"
	"foodnest/internal/logger"
	appErrors "foodnest/pkg/errors"
)

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// ImageStore writes uploaded food images under <dir>/foods with generated
// names, so user-supplied filenames never reach the filesystem.
type ImageStore struct {
	dir     string
	baseURL string
	maxSize int64
}

func NewImageStore(cfg config.UploadConfig, baseURL string) *ImageStore {
	return &ImageStore{
		dir:     filepath.Join(cfg.Dir, "foods"),
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: cfg.MaxSizeByte,
	}
}

// Save persists the upload and returns its public URL and filesystem path.
func (s *ImageStore) Save(fh *multipart.FileHeader) (url string, path string, err error) {
	if fh.Size > s.maxSize {
		return "", "", appErrors.NewAppError("FILE_TOO_LARGE",
			fmt.Sprintf("Image exceeds the %d byte limit", s.maxSize), nil)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", "", appErrors.NewAppError("UNSUPPORTED_FILE_TYPE",
			"Only jpg, jpeg, png, webp and gif images are accepted", nil)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	path = filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1)); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write image file: %w", err)
	}

	url = s.baseURL + "/uploads/foods/" + name
	return url, path, nil
}

// Remove deletes a previously saved image. A missing file is not an error.
func (s *ImageStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove image file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
