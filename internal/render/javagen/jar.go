package javagen

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrJarPath = errors.New("invalid source jar path")

const manifest = "Manifest-Version: 1.0\r\nCreated-By: valuegen\r\n\r\n"

// WriteSourceJar writes files as a source jar. Entries are sorted by path
// so the archive is reproducible.
func WriteSourceJar(w io.Writer, files []File) error {
	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	zw := zip.NewWriter(w)
	entries := append([]File{{Path: "META-INF/MANIFEST.MF", Source: manifest}}, sorted...)
	seen := make(map[string]bool, len(entries))
	for _, f := range entries {
		if seen[f.Path] {
			return fmt.Errorf("duplicate jar entry %s", f.Path)
		}
		seen[f.Path] = true
		// A zero Modified time keeps the archive byte-stable.
		ew, err := zw.CreateHeader(&zip.FileHeader{Name: f.Path, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("jar entry %s: %w", f.Path, err)
		}
		if _, err := io.WriteString(ew, f.Source); err != nil {
			return fmt.Errorf("jar entry %s: %w", f.Path, err)
		}
	}
	return zw.Close()
}

// ValidateJarPath checks that p names a .jar or .srcjar in an existing
// directory and returns it as an absolute path.
func ValidateJarPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty", ErrJarPath)
	}
	switch filepath.Ext(p) {
	case ".jar", ".srcjar":
	default:
		return "", fmt.Errorf("%w: %s must end in .jar or .srcjar", ErrJarPath, p)
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJarPath, err)
	}
	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJarPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrJarPath, filepath.Dir(abs))
	}
	return abs, nil
}
