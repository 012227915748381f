package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/garb/internal/image"
)

// CreateTarGz writes a tar.gz archive of the image files in srcDir to w.
// Files are stored flat under their base names. Returns the number of
// files archived.
func CreateTarGz(w io.Writer, srcDir string) (int, error) {
	files, err := image.ScanDirectory(srcDir)
	if err != nil {
		return 0, err
	}

	gzw := gzip.NewWriter(w)
	tw := tar.NewWriter(gzw)

	count := 0
	for _, f := range files {
		if err := addTarEntry(tw, f.Path); err != nil {
			return count, err
		}
		count++
	}

	if err := tw.Close(); err != nil {
		return count, fmt.Errorf("failed to finalize tar archive: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return count, fmt.Errorf("failed to finalize gzip stream: %w", err)
	}

	return count, nil
}

// CreateZip writes a zip archive of the image files in srcDir to w.
// Files are stored flat under their base names. Returns the number of
// files archived.
func CreateZip(w io.Writer, srcDir string) (int, error) {
	files, err := image.ScanDirectory(srcDir)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)

	count := 0
	for _, f := range files {
		if err := addZipEntry(zw, f.Path); err != nil {
			return count, err
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("failed to finalize zip archive: %w", err)
	}

	return count, nil
}

// addTarEntry appends one file to a tar stream under its base name.
func addTarEntry(tw *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build tar header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write tar header for %s: %w", path, err)
	}

	in, err := os.Open(path) // #nosec G304 - Source path comes from scanning the wardrobe directory
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	if _, err := io.Copy(tw, in); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return nil
}

// addZipEntry appends one file to a zip archive under its base name.
func addZipEntry(zw *zip.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build zip header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	out, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to write zip header for %s: %w", path, err)
	}

	in, err := os.Open(path) // #nosec G304 - Source path comes from scanning the wardrobe directory
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return nil
}
