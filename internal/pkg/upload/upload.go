package upload

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const (
	// MaxFileSize is the maximum size of a single uploaded image (5MB)
	MaxFileSize = 5 * 1024 * 1024
	// MaxFiles is the maximum number of files per upload
	MaxFiles = 5
)

// Upload kinds map to subdirectories under the uploads root
const (
	KindOffers      = "offers"
	KindProfiles    = "profiles"
	KindFeeds       = "feeds"
	KindAttachments = "attachments"
	KindPortfolio   = "portfolio"
)

var (
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrFileTooLarge  = errors.New("file is too large, maximum size is 5MB")
	ErrTooManyFiles  = errors.New("too many files, maximum is 5 files")
	ErrMalformedForm = errors.New("malformed multipart form")
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Store saves uploaded images to local disk
type Store struct {
	root string
}

// NewStore creates an upload store rooted at dir, creating the
// per-kind subdirectories if they do not exist.
func NewStore(root string) (*Store, error) {
	for _, kind := range []string{KindOffers, KindProfiles, KindFeeds, KindAttachments, KindPortfolio} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the uploads root directory
func (s *Store) Root() string {
	return s.root
}

// SaveImages validates and stores up to MaxFiles image files from a
// multipart form field, returning their public URL paths
// (e.g. /uploads/offers/<name>).
func (s *Store) SaveImages(c *fiber.Ctx, field, kind string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// A non-multipart request means no files; a broken multipart
		// body is the client's error and must surface
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxFiles {
		return nil, ErrTooManyFiles
	}

	saved := make([]string, 0, len(files))
	for _, file := range files {
		urlPath, err := s.saveOne(c, file, kind)
		if err != nil {
			// Clean up anything already written for this request
			s.RemoveAll(saved)
			return nil, err
		}
		saved = append(saved, urlPath)
	}

	return saved, nil
}

// SaveImage stores a single image file from a multipart form field.
// Returns an empty string when the field is absent.
func (s *Store) SaveImage(c *fiber.Ctx, field, kind string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	return s.saveOne(c, file, kind)
}

func (s *Store) saveOne(c *fiber.Ctx, file *multipart.FileHeader, kind string) (string, error) {
	if file.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] {
		return "", ErrNotAnImage
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(s.root, kind, name)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + kind + "/" + name, nil
}

// Remove deletes a stored file by its public URL path. Failures are
// logged, never escalated: data deletions must not be undone by a
// missing file.
func (s *Store) Remove(urlPath string) {
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == urlPath || rel == "" {
		return // not one of ours
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Failed to delete upload %s: %v", urlPath, err)
	}
}

// RemoveAll deletes stored files by their public URL paths, best-effort.
func (s *Store) RemoveAll(urlPaths []string) {
	for _, p := range urlPaths {
		s.Remove(p)
	}
}

// ListFiles walks the uploads root and returns the public URL paths of
// every stored file. Used by the maintenance sweep.
func (s *Store) ListFiles() ([]string, error) {
	var paths []string
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, "/uploads/"+filepath.ToSlash(rel))
		return nil
	})
	return paths, err
}
