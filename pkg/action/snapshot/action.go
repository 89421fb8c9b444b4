package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/valuegen/pkg/action/generate"
	"github.com/cmmoran/valuegen/pkg/manifest"
	"github.com/cmmoran/valuegen/pkg/parser"
)

var ErrNoPrevious = errors.New("no current/previous snapshots recorded")

// Generate writes the values for opts, copies the Go output next to the
// manifest under snapshots/<version> and records it in the manifest.
func Generate(ctx context.Context, opts *parser.Options, manifestPath, snapshotName, snapshotVersion string) (*generate.Report, string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, "", err
	}

	r, err := generate.Generate(ctx, opts)
	if err != nil {
		return r, "", err
	}
	if r.GoFile == "" {
		return r, "", fmt.Errorf("snapshot %s: no go output was generated", snapshotVersion)
	}

	dir := filepath.Join(filepath.Dir(manifestPath), "snapshots", snapshotVersion)
	outFile := filepath.Join(dir, filepath.Base(r.GoFile))
	if err := copyFile(r.GoFile, outFile); err != nil {
		return r, "", err
	}
	s := manifest.Snapshot{Name: snapshotName, Version: snapshotVersion, File: outFile, Types: r.Types}
	if strings.HasSuffix(r.JavaOut, "jar") {
		s.Jar = filepath.Join(dir, filepath.Base(r.JavaOut))
		if err := copyFile(r.JavaOut, s.Jar); err != nil {
			return r, "", err
		}
	}
	m.AddSnapshot(s)

	if err := m.Save(manifestPath); err != nil {
		return r, "", err
	}

	return r, outFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshots, and returns a textual diff of their type sets and Go sources.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", ErrNoPrevious
	}

	current, okCur := m.Snapshot(m.CurrentVersion)
	previous, okPrev := m.Snapshot(m.PreviousVersion)
	if !okCur || !okPrev {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	currentSrc, err := os.ReadFile(current.File)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previousSrc, err := os.ReadFile(previous.File)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(previous.Types, current.Types) + cmp.Diff(string(previousSrc), string(currentSrc)), nil
}

func copyFile(from, to string) error {
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
