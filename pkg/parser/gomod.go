package parser

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

var ErrNoModule = errors.New("no go.mod found")

// findGoModDir walks up from dir until it finds go.mod. dir need not exist.
func findGoModDir(dir string) (string, error) {
	from := dir
	for {
		if _, err := os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("%w above %s", ErrNoModule, dir)
		}
		from = parent
	}
}

// goImportPath returns the import path dir has inside its enclosing module.
func goImportPath(dir string) (string, error) {
	modDir, err := findGoModDir(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", err
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return "", fmt.Errorf("%s: missing module directive", filepath.Join(modDir, "go.mod"))
	}
	rel, err := filepath.Rel(modDir, dir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return modPath, nil
	}
	return path.Join(modPath, filepath.ToSlash(rel)), nil
}
