// Package upload stores product photos under collision-resistant names.
package upload

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// PublicPrefix is the URL path product photos are served under, independent
// of where the files are stored on disk.
const PublicPrefix = "/static/img/uploads"

// ErrUnsupportedFormat is returned for files outside the extension allow-list.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Allowed reports whether the filename carries an accepted image extension.
// The check is case-insensitive.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Saver writes uploads into Dir and answers with the public URL path.
type Saver struct {
	Dir      string
	MaxWidth uint
}

func NewSaver(dir string) *Saver {
	return &Saver{Dir: dir, MaxWidth: 1200}
}

// Save persists the upload under produto_<random>.<ext>, preserving the
// original extension. JPEG and PNG wider than MaxWidth are downscaled;
// webp (no stdlib encoder) and undecodable files are stored as received.
func (s *Saver) Save(file multipart.File, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	unique := fmt.Sprintf("produto_%s%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:12], ext)
	dest := filepath.Join(s.Dir, unique)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if err := s.write(out, file, ext); err != nil {
		os.Remove(dest)
		return "", err
	}

	return PublicPrefix + "/" + unique, nil
}

// Remove best-effort deletes the stored file behind an image URL. URLs
// outside PublicPrefix are ignored.
func (s *Saver) Remove(imageURL string) {
	name, ok := strings.CutPrefix(imageURL, PublicPrefix+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return
	}
	path := filepath.Join(s.Dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove image file", "path", path, "error", err)
	}
}

func (s *Saver) write(out io.Writer, file multipart.File, ext string) error {
	switch ext {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(file)
		if err != nil {
			return copyRaw(out, file)
		}
		return jpeg.Encode(out, s.downscale(img), &jpeg.Options{Quality: 85})
	case ".png":
		img, err := png.Decode(file)
		if err != nil {
			return copyRaw(out, file)
		}
		return png.Encode(out, s.downscale(img))
	default:
		return copyRaw(out, file)
	}
}

func (s *Saver) downscale(img image.Image) image.Image {
	if s.MaxWidth == 0 || uint(img.Bounds().Dx()) <= s.MaxWidth {
		return img
	}
	return resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
}

func copyRaw(out io.Writer, file multipart.File) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := io.Copy(out, file)
	return err
}
