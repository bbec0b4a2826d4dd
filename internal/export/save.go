// Package export writes downloaded report files to disk with dated
// filenames.
package export

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// extensions maps the export content types the server emits to file
// extensions. mime.ExtensionsByType is the fallback for anything else.
var extensions = map[string]string{
	"text/csv":        ".csv",
	"application/pdf": ".pdf",
}

// Filename builds the dated name for an export, e.g.
// "requests-2026-08-24.csv".
func Filename(kind string, contentType string, now time.Time) string {
	return kind + "-" + now.Format("2006-01-02") + extensionFor(contentType)
}

// Save writes an export payload into dir under its dated filename and
// returns the full path. An existing file with the same name is
// overwritten, so re-running an export on the same day stays idempotent.
func Save(dir, kind, contentType string, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(kind, contentType, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export %s: %w", path, err)
	}
	return path, nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}
	if ext, ok := extensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
