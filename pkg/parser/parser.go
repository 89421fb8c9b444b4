package parser

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/valuegen/internal/model"
	vparser "github.com/cmmoran/valuegen/internal/parser"
	"github.com/cmmoran/valuegen/internal/render/gogen"
	"github.com/cmmoran/valuegen/internal/render/javagen"
	"github.com/cmmoran/valuegen/internal/source/golang"
	"github.com/cmmoran/valuegen/internal/source/java"
)

// Failure is a declaration, or a whole file, that produced no output.
type Failure struct {
	Decl string // empty when the file itself could not be read
	File string // relative to InDir
	Err  error
}

func (f Failure) Error() string {
	return f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Parser holds state/results of a parse run.
type Parser struct {
	Opts Options

	Specs    []*model.GeneratedTypeSpec
	Failures []Failure

	log *slog.Logger
}

// New executes the parser with opts.
func New(opts ...Option) (*Parser, error) {
	o := &Options{}
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Parser, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		Opts: *opts,
		log:  slog.Default().With("in", opts.InDir),
	}

	return p, nil
}

// Parse discovers the inputs, reads every declaration and analyzes the
// selected ones. Per-declaration problems end up in Failures; the returned
// error is reserved for problems that stop the whole run.
func (p *Parser) Parse(ctx context.Context) error {
	p.Specs, p.Failures = nil, nil

	javaFiles, goDirs, err := p.discover()
	if err != nil {
		return err
	}
	p.log.With("java_files", len(javaFiles), "go_packages", len(goDirs)).Debug("discovered inputs")

	var roots []*model.TypeDeclaration
	for _, path := range javaFiles {
		f, err := java.ParseFile(path)
		if err != nil {
			p.fail(Failure{File: p.rel(path), Err: err})
			continue
		}
		roots = append(roots, f.Types...)
	}
	javaBuilder := vparser.NewBuilder(p.Opts.config())
	results, err := javaBuilder.BuildAll(ctx, javaBuilder.Collect(roots))
	if err != nil {
		return err
	}

	if len(goDirs) > 0 {
		decls, err := golang.Load(ctx, p.Opts.InDir, goDirs...)
		if err != nil {
			return err
		}
		cfg := p.Opts.config()
		cfg.Profile = vparser.GoProfile
		cfg.Annotations = []string{golang.MarkerAnnotation}
		// Go factories are interface methods with no fixed name.
		cfg.FactoryName = ""
		goBuilder := vparser.NewBuilder(cfg)
		goResults, err := goBuilder.BuildAll(ctx, goBuilder.Collect(decls))
		if err != nil {
			return err
		}
		results = append(results, goResults...)
	}

	p.record(results)
	p.log.With("generated", p.count(len(p.Specs), "value type"), "failed", p.count(len(p.Failures), "declaration")).
		Info("analysis complete")
	return nil
}

// discover expands the input globs and splits the matches into Java files
// and Go package patterns relative to InDir.
func (p *Parser) discover() ([]string, []string, error) {
	seen := map[string]bool{}
	var javaFiles []string
	goDirs := map[string]bool{}
	for _, pattern := range p.Opts.Inputs {
		matches, err := doublestar.FilepathGlob(filepath.Join(p.Opts.InDir, pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || omitInput(m, &p.Opts) {
				continue
			}
			seen[m] = true
			switch filepath.Ext(m) {
			case ".java":
				javaFiles = append(javaFiles, m)
			case ".go":
				dir := p.rel(filepath.Dir(m))
				if dir != "." {
					dir = "./" + filepath.ToSlash(dir)
				}
				goDirs[dir] = true
			}
		}
	}
	sort.Strings(javaFiles)

	dirs := make([]string, 0, len(goDirs))
	for d := range goDirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return javaFiles, dirs, nil
}

// record splits results into specs and failures. All Go output shares one
// file, so a synthesized name may only be used once across languages.
func (p *Parser) record(results []vparser.Result) {
	names := map[string]string{}
	for _, r := range results {
		if r.Err == nil {
			if prev, ok := names[r.Spec.Name]; ok && p.Opts.Wants(TargetGo) {
				r.Err = fmt.Errorf("%s: %w (first declared in %s)", r.Decl.Name, vparser.ErrDuplicateName, prev)
			} else {
				names[r.Spec.Name] = p.rel(r.Decl.File)
				p.Specs = append(p.Specs, r.Spec)
				continue
			}
		}
		p.fail(Failure{Decl: strings.Join(r.Decl.Chain(), "."), File: p.rel(r.Decl.File), Err: r.Err})
	}
}

func (p *Parser) fail(f Failure) {
	p.log.With("file", f.File, "decl", f.Decl, "error", f.Err).Warn("declaration skipped")
	p.Failures = append(p.Failures, f)
}

// GenerateValueFile renders every spec into one Go file.
func (p *Parser) GenerateValueFile() *jen.File {
	var opts []gogen.Option
	if pkgPath, err := goImportPath(p.Opts.OutDir); err == nil {
		opts = append(opts, gogen.WithPkgPath(pkgPath))
	} else {
		p.log.With("error", err).Debug("output directory is outside any module")
	}
	return gogen.Render(p.Opts.GoPackage, p.Specs, opts...)
}

// GenerateJavaFiles renders the Java-sourced specs. Go-sourced specs have
// no Java counterpart and are skipped.
func (p *Parser) GenerateJavaFiles() ([]javagen.File, error) {
	var files []javagen.File
	for _, spec := range p.Specs {
		if spec.Language != model.LangJava {
			p.log.With("type", spec.Name).Debug("no java output for go declaration")
			continue
		}
		f, err := javagen.Render(spec)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (p *Parser) rel(path string) string {
	if path == "" {
		return ""
	}
	if r, err := filepath.Rel(p.Opts.InDir, path); err == nil {
		return r
	}
	return path
}

func (p *Parser) count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
