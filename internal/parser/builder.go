package parser

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/valuegen/internal/model"
)

var ErrDuplicateName = errors.New("synthesized name already generated")

// Config controls which declarations are analyzed and how.
type Config struct {
	Profile         Profile
	Annotations     []string // marker annotations selecting declarations
	ExcludeTypes    []string // declaration names to skip (case-insensitive)
	Naming          Naming
	FactoryName     string
	MaxNestingDepth int // 0 means unbounded
	Concurrency     int // 0 means GOMAXPROCS
}

// Result is the outcome of analyzing one declaration. Exactly one of Spec
// and Err is set.
type Result struct {
	Decl *model.TypeDeclaration
	Spec *model.GeneratedTypeSpec
	Err  error
}

// Builder runs extraction, classification, naming and synthesis over a
// batch of declarations.
type Builder struct {
	cfg        Config
	classifier *Classifier
}

// NewBuilder initializes a Builder, filling zero config values with
// defaults.
func NewBuilder(cfg Config) *Builder {
	if cfg.Profile.Primitives == nil {
		cfg.Profile = JavaProfile
	}
	if len(cfg.Annotations) == 0 {
		cfg.Annotations = []string{"AutoValue"}
	}
	if cfg.Naming == (Naming{}) {
		cfg.Naming = DefaultNaming
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Builder{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Profile),
	}
}

// Collect walks the declaration trees rooted at roots and returns every
// annotated, non-excluded declaration. Parents precede their nested
// declarations; siblings keep source order.
func (b *Builder) Collect(roots []*model.TypeDeclaration) []*model.TypeDeclaration {
	var out []*model.TypeDeclaration
	var walk func(d *model.TypeDeclaration)
	walk = func(d *model.TypeDeclaration) {
		if d.HasAnnotation(b.cfg.Annotations...) && !b.isExcluded(d) {
			out = append(out, d)
		}
		for _, n := range d.NestedTypes() {
			walk(n)
		}
	}
	for _, r := range roots {
		if r != nil {
			walk(r)
		}
	}
	return out
}

// Analyze produces the spec of a single declaration.
func (b *Builder) Analyze(decl *model.TypeDeclaration) (*model.GeneratedTypeSpec, error) {
	if b.cfg.MaxNestingDepth > 0 && decl.Depth() > b.cfg.MaxNestingDepth {
		return nil, &DeclarationError{
			Decl: decl.Name,
			Pos:  decl.Pos,
			Err:  fmt.Errorf("%w: depth %d exceeds %d", ErrNestingTooDeep, decl.Depth(), b.cfg.MaxNestingDepth),
		}
	}

	members, err := Extract(decl, b.classifier)
	if err != nil {
		return nil, err
	}

	props := make([]model.Property, 0, len(members))
	for _, m := range members {
		class, err := b.classifier.Classify(m.Type, m.Nullable)
		if err != nil {
			return nil, &DeclarationError{Decl: decl.Name, Property: m.Name, Pos: m.Pos, Err: err}
		}
		props = append(props, model.Property{PropertyMember: m, Class: class})
	}

	factory, err := ExtractFactory(decl, members, b.cfg.FactoryName)
	if err != nil {
		return nil, err
	}

	spec := Synthesize(ResolveName(decl, b.cfg.Naming), props)
	spec.Source = decl.Chain()
	spec.Language = b.cfg.Profile.Name
	spec.Kind = decl.Kind
	spec.Package = decl.Package
	spec.Imports = append([]string(nil), decl.Imports...)
	spec.TypeParams = append([]string(nil), decl.TypeParams...)
	spec.File = decl.File
	spec.Factory = factory
	return &spec, nil
}

// BuildAll analyzes every declaration concurrently. Results keep the order
// of decls and a failing declaration never stops the others; the returned
// error is only set when ctx is cancelled.
func (b *Builder) BuildAll(ctx context.Context, decls []*model.TypeDeclaration) ([]Result, error) {
	results := make([]Result, len(decls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency)
	for i, d := range decls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, err := b.Analyze(d)
			results[i] = Result{Decl: d, Spec: spec, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.dedupe(results)
	return results, nil
}

// dedupe fails every repeat of a (package, synthesized name) pair after the
// first, in input order.
func (b *Builder) dedupe(results []Result) {
	seen := make(map[string]*model.TypeDeclaration, len(results))
	for i := range results {
		r := &results[i]
		if r.Spec == nil {
			continue
		}
		key := r.Spec.Package + "." + r.Spec.Name
		if first, ok := seen[key]; ok {
			r.Err = &DeclarationError{
				Decl: r.Decl.Name,
				Pos:  r.Decl.Pos,
				Err:  fmt.Errorf("%w: %s (first declared in %s)", ErrDuplicateName, r.Spec.Name, first.File),
			}
			r.Spec = nil
			continue
		}
		seen[key] = r.Decl
	}
}

func (b *Builder) isExcluded(d *model.TypeDeclaration) bool {
	dotted := strings.Join(d.Chain(), ".")
	for _, ex := range b.cfg.ExcludeTypes {
		if strings.EqualFold(ex, d.Name) || strings.EqualFold(ex, dotted) {
			return true
		}
	}
	return false
}
