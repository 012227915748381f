// Package archive creates and extracts wardrobe image archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/garb/internal/image"
	"github.com/jmylchreest/garb/internal/security"
)

// maxDecompressedSize limits the decompressed size of a single archive
// entry to prevent decompression bomb attacks.
const maxDecompressedSize = 100 * 1024 * 1024

// Extract unpacks the image files from an archive into destDir.
// Supported formats: tar.gz, tar.xz, tar.bz2 and zip, detected from the
// archive filename. Entries are written flat under their base names;
// non-image entries are skipped. Returns the paths of the extracted files.
func Extract(data []byte, filename, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	switch {
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		return extractTar(gzr, destDir)

	case strings.HasSuffix(filename, ".tar.xz"), strings.HasSuffix(filename, ".txz"):
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return extractTar(xzr, destDir)

	case strings.HasSuffix(filename, ".tar.bz2"), strings.HasSuffix(filename, ".tbz"), strings.HasSuffix(filename, ".tbz2"):
		return extractTar(bzip2.NewReader(bytes.NewReader(data)), destDir)

	case strings.HasSuffix(filename, ".zip"):
		return extractZip(data, destDir)
	}

	return nil, fmt.Errorf("unsupported archive format: %s", filename)
}

// extractTar walks a tar stream and writes every image entry into destDir.
func extractTar(r io.Reader, destDir string) ([]string, error) {
	tr := tar.NewReader(r)

	var extracted []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		if !image.IsImageFile(header.Name) {
			continue
		}
		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return extracted, fmt.Errorf("unsafe archive entry %q: %w", header.Name, err)
		}

		path, err := writeEntry(destDir, filepath.Base(header.Name), tr)
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, path)
	}

	return extracted, nil
}

// extractZip writes every image entry of a zip archive into destDir.
func extractZip(data []byte, destDir string) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var extracted []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !image.IsImageFile(f.Name) {
			continue
		}
		if err := security.ValidateFilePath(f.Name, destDir); err != nil {
			return extracted, fmt.Errorf("unsafe archive entry %q: %w", f.Name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return extracted, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}

		path, err := writeEntry(destDir, filepath.Base(f.Name), rc)
		rc.Close()
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, path)
	}

	return extracted, nil
}

// writeEntry copies a single archive entry to destDir with a
// decompression size limit.
func writeEntry(destDir, name string, r io.Reader) (string, error) {
	destPath := filepath.Join(destDir, name)

	out, err := os.Create(destPath) // #nosec G304 - Destination is inside the validated wardrobe directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	limitedReader := security.NewLimitedReader(r, maxDecompressedSize)
	_, copyErr := io.Copy(out, limitedReader)
	closeErr := out.Close()

	if copyErr != nil {
		return "", fmt.Errorf("failed to extract %s: %w", name, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close %s: %w", destPath, closeErr)
	}

	return destPath, nil
}
