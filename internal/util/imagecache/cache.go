// Package imagecache stores downloaded outfit images on disk so
// repeated analyses of the same URL do not fetch it again.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/garb/internal/util/http"
)

// Options configures a cached fetch.
type Options struct {
	// Dir is the cache directory. If empty, DefaultDir is used.
	Dir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "garb", "images"), nil
	}
	return filepath.Join(cacheDir, "garb", "images"), nil
}

// cachedName derives a deterministic filename for a URL from a hash
// of the URL plus its original extension.
func cachedName(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}

	return name + ext
}

// Fetch downloads a remote image into the cache and returns the local
// path. An already cached URL is returned without touching the
// network unless Refresh is set.
func Fetch(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cacheDir := opts.Dir
	if cacheDir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cachedName(url))

	if !opts.Refresh {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.WriteFile(cachedPath, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}
