package parser

import (
	"path/filepath"
	"strings"
)

// omitInput reports whether a discovered file should not be read: Go test
// files, anything under vendor or a directory hidden with "." or "_", and
// the Go output file itself.
func omitInput(path string, opts *Options) bool {
	if path == filepath.Join(opts.OutDir, opts.OutFile) {
		return true
	}
	if strings.HasSuffix(path, "_test.go") {
		return true
	}

	rel, err := filepath.Rel(opts.InDir, path)
	if err != nil {
		return true
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range parts[:len(parts)-1] {
		if dir == "vendor" || hiddenDir(dir) {
			return true
		}
	}
	return false
}

func hiddenDir(name string) bool {
	return name != "." && name != ".." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"))
}
