package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/valuegen/internal/render/javagen"
	"github.com/cmmoran/valuegen/pkg/parser"
)

// Report summarizes one generate run.
type Report struct {
	Types    []string
	Failures []parser.Failure
	GoFile   string // empty when no Go output was written
	JavaOut  string // source jar, or root of the Java source tree
	JavaN    int
}

// Generate parses opts.InDir and writes the configured outputs. Declarations
// that fail analysis are reported, not returned as an error.
func Generate(ctx context.Context, opts *parser.Options) (*Report, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	if err = par.Parse(ctx); err != nil {
		return nil, err
	}

	r := &Report{Failures: par.Failures}
	for _, s := range par.Specs {
		r.Types = append(r.Types, s.Name)
	}
	l := slog.Default().With("out", par.Opts.OutDir)

	if par.Opts.Wants(parser.TargetGo) {
		if len(par.Specs) == 0 {
			l.Warn("nothing to generate")
		} else if r.GoFile, err = writeGo(par); err != nil {
			return r, err
		} else {
			l.With("file", r.GoFile).Info("wrote go values")
		}
	}

	if par.Opts.Wants(parser.TargetJava) {
		files, err := par.GenerateJavaFiles()
		if err != nil {
			return r, err
		}
		r.JavaN = len(files)
		if par.Opts.JarPath != "" {
			r.JavaOut, err = writeJar(par.Opts.JarPath, files)
		} else {
			r.JavaOut, err = writeJavaTree(filepath.Join(par.Opts.OutDir, "java"), files)
		}
		if err != nil {
			return r, err
		}
		l.With("path", r.JavaOut, "files", r.JavaN).Info("wrote java sources")
	}

	return r, nil
}

func writeGo(par *parser.Parser) (string, error) {
	f := par.GenerateValueFile()
	if err := os.MkdirAll(par.Opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outFile := filepath.Clean(filepath.Join(par.Opts.OutDir, par.Opts.OutFile))
	return outFile, writeRendered(outFile, f.Render)
}

// writeRendered only touches path once render has succeeded, so a failed
// run leaves the previous output in place.
func writeRendered(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeJar(path string, files []javagen.File) (string, error) {
	abs, err := javagen.ValidateJarPath(path)
	if err != nil {
		return "", err
	}
	err = writeRendered(abs, func(w io.Writer) error {
		return javagen.WriteSourceJar(w, files)
	})
	return abs, err
}

func writeJavaTree(root string, files []javagen.File) (string, error) {
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(f.Source), 0o644); err != nil {
			return "", err
		}
	}
	return root, nil
}
