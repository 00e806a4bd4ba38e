// Package assets wraps the file storage backend behind the two operations
// the portfolio needs: category-scoped upload and best-effort delete by URL.
//
// Uploads land under upload/<category>/<name>; the resulting public URL
// therefore always contains an "upload" path segment, which Delete uses to
// recover the storage path. URLs that do not contain the segment (hand-pasted
// external links, already-deleted assets) are ignored rather than treated as
// errors.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload categories. The category picks the folder and the format allow-list.
const (
	CategoryCarousel     = "carousel"
	CategoryProfile      = "profile"
	CategoryProjects     = "projects"
	CategoryGallery      = "gallery"
	CategoryEducation    = "education"
	CategoryCertificates = "certificates"
)

// uploadMarker is the path segment all managed asset URLs contain.
const uploadMarker = "upload"

// ErrUnsupportedFormat is returned when a file's extension is not in the
// category's allow-list. Handlers surface it as an inline form error.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// imageExts is the allow-list for every image category.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Manager is the asset lifecycle manager.
type Manager struct {
	store  storage.Store
	logger *zap.Logger
}

// New creates a Manager over the given storage backend.
func New(store storage.Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// AllowedExt reports whether filename's extension is acceptable for category.
// The certificates category accepts PDFs only; every other category accepts
// the fixed image format set.
func AllowedExt(category, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if category == CategoryCertificates {
		return ext == ".pdf"
	}
	return imageExts[ext]
}

// Upload stores the file under a category-scoped path and returns its public
// URL. The caller owns closing the reader.
func (m *Manager) Upload(ctx context.Context, category, filename, contentType string, r io.Reader) (string, error) {
	if !AllowedExt(category, filename) {
		return "", fmt.Errorf("%w: %s for category %s", ErrUnsupportedFormat, filepath.Ext(filename), category)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String()[:8] + ext
	storagePath := path.Join(uploadMarker, category, name)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := m.store.Put(ctx, storagePath, r, opts); err != nil {
		return "", fmt.Errorf("asset upload: %w", err)
	}

	assetURL := m.store.URL(storagePath)
	m.logger.Debug("asset uploaded",
		zap.String("category", category),
		zap.String("path", storagePath),
		zap.String("url", assetURL))
	return assetURL, nil
}

// Delete removes the asset behind assetURL from storage, best-effort.
// An empty or unrecognized URL is a no-op. Not-found and every other delete
// failure are logged and swallowed: asset deletion never blocks the document
// mutation it accompanies.
func (m *Manager) Delete(ctx context.Context, assetURL string) {
	storagePath := StoragePath(assetURL)
	if storagePath == "" {
		return
	}

	err := m.store.Delete(ctx, storagePath)
	switch {
	case err == nil:
		m.logger.Debug("asset deleted", zap.String("path", storagePath))
	case errors.Is(err, os.ErrNotExist):
		m.logger.Info("asset already gone", zap.String("path", storagePath))
	default:
		m.logger.Warn("asset delete failed",
			zap.String("path", storagePath),
			zap.Error(err))
	}
}

// StoragePath derives the storage path from a public asset URL.
//
// It locates the "upload" path segment, skips an optional version segment
// (v<digits>, emitted by some CDN configurations), and returns the remainder
// prefixed with the marker. Returns "" when the URL is empty or does not
// belong to the asset store.
func StoragePath(assetURL string) string {
	if assetURL == "" {
		return ""
	}

	u, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	marker := -1
	for i, seg := range segments {
		if seg == uploadMarker {
			marker = i
			break
		}
	}
	if marker < 0 || marker == len(segments)-1 {
		return ""
	}

	rest := segments[marker+1:]
	if isVersionSegment(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return ""
	}
	return path.Join(append([]string{uploadMarker}, rest...)...)
}

// PublicID is the storage path with the file extension stripped — the stable
// identifier of an asset independent of its format. Used in logs and tests.
func PublicID(assetURL string) string {
	p := StoragePath(assetURL)
	if p == "" {
		return ""
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// isVersionSegment matches "v" followed by digits, e.g. v1712345678.
func isVersionSegment(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, c := range seg[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
