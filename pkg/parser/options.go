package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	vparser "github.com/cmmoran/valuegen/internal/parser"
)

// Output targets.
const (
	TargetGo   = "go"
	TargetJava = "java"
	TargetBoth = "both"
)

// Options control discovery, analysis and rendering.
//
// InDir           - directory to scan
// Inputs          - doublestar globs relative to InDir; .java files are read
// with the Java front-end, .go files with the Go front-end
// OutDir          - output directory
// OutFile         - Go output filename
// GoPackage       - package clause of the Go output (default: base of OutDir)
// Target          - go, java or both
// JarPath         - write Java output as a source jar instead of a tree
// NamePrefix      - prefix of every synthesized name (never empty)
// Separator       - joins the names of nested declarations
// Annotations     - marker annotations selecting Java declarations
// ExcludeTypes    - declaration names to skip (case-insensitive)
// FactoryName     - name of the factory method mapped onto the constructor
// MaxNestingDepth - reject declarations nested deeper than this (0: no bound)
// Concurrency     - parallel analyses (0: GOMAXPROCS)
type Options struct {
	InDir           string   `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty" validate:"required"`
	Inputs          []string `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty" mapstructure:"inputs,omitempty" validate:"dive,required"`
	OutDir          string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty" validate:"required"`
	OutFile         string   `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty" validate:"required,endswith=.go"`
	GoPackage       string   `json:"go_package,omitempty" yaml:"go_package,omitempty" toml:"go_package,omitempty" mapstructure:"go_package,omitempty"`
	Target          string   `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty" mapstructure:"target,omitempty" validate:"oneof=go java both"`
	JarPath         string   `json:"jar_path,omitempty" yaml:"jar_path,omitempty" toml:"jar_path,omitempty" mapstructure:"jar_path,omitempty" validate:"omitempty,endswith=.jar|endswith=.srcjar"`
	NamePrefix      string   `json:"name_prefix,omitempty" yaml:"name_prefix,omitempty" toml:"name_prefix,omitempty" mapstructure:"name_prefix,omitempty" validate:"required"`
	Separator       string   `json:"separator,omitempty" yaml:"separator,omitempty" toml:"separator,omitempty" mapstructure:"separator,omitempty"`
	Annotations     []string `json:"annotations,omitempty" yaml:"annotations,omitempty" toml:"annotations,omitempty" mapstructure:"annotations,omitempty"`
	ExcludeTypes    []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	FactoryName     string   `json:"factory_name,omitempty" yaml:"factory_name,omitempty" toml:"factory_name,omitempty" mapstructure:"factory_name,omitempty"`
	MaxNestingDepth int      `json:"max_nesting_depth,omitempty" yaml:"max_nesting_depth,omitempty" toml:"max_nesting_depth,omitempty" mapstructure:"max_nesting_depth,omitempty" validate:"gte=0"`
	Concurrency     int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" toml:"concurrency,omitempty" mapstructure:"concurrency,omitempty" validate:"gte=0"`
}

func NewOptions() *Options {
	return &Options{
		InDir:       ".",
		Inputs:      []string{"**/*.java", "**/*.go"},
		OutDir:      "generated",
		OutFile:     "values_gen.go",
		Target:      TargetGo,
		NamePrefix:  vparser.DefaultNaming.Prefix,
		Separator:   vparser.DefaultNaming.Separator,
		Annotations: []string{"AutoValue"},
		FactoryName: "create",
	}
}

// Normalize fills every unset option with its default and makes the
// directories absolute.
func (o *Options) Normalize() {
	def := NewOptions()
	if o.InDir == "" {
		o.InDir = def.InDir
	}
	if len(o.Inputs) == 0 {
		o.Inputs = def.Inputs
	}
	if o.OutDir == "" {
		o.OutDir = def.OutDir
	}
	if o.OutFile == "" {
		o.OutFile = def.OutFile
	}
	if o.Target == "" {
		o.Target = def.Target
	}
	o.Target = strings.ToLower(o.Target)
	if o.NamePrefix == "" && o.Separator == "" {
		o.NamePrefix, o.Separator = def.NamePrefix, def.Separator
	}
	if len(o.Annotations) == 0 {
		o.Annotations = def.Annotations
	}
	if o.FactoryName == "" {
		o.FactoryName = def.FactoryName
	}
	if abs, err := filepath.Abs(o.InDir); err == nil {
		o.InDir = abs
	}
	if abs, err := filepath.Abs(o.OutDir); err == nil {
		o.OutDir = abs
	}
	if o.GoPackage == "" {
		o.GoPackage = goPackageName(filepath.Base(o.OutDir))
	}
	for i, t := range o.ExcludeTypes {
		o.ExcludeTypes[i] = strings.TrimSpace(t)
	}
}

// Validate reports the first invalid option.
func (o *Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Wants reports whether target is among the configured outputs.
func (o *Options) Wants(target string) bool {
	return o.Target == target || o.Target == TargetBoth
}

func (o *Options) config() vparser.Config {
	return vparser.Config{
		Profile:         vparser.JavaProfile,
		Annotations:     o.Annotations,
		ExcludeTypes:    o.ExcludeTypes,
		Naming:          vparser.Naming{Prefix: o.NamePrefix, Separator: o.Separator},
		FactoryName:     o.FactoryName,
		MaxNestingDepth: o.MaxNestingDepth,
		Concurrency:     o.Concurrency,
	}
}

// goPackageName turns a directory name into a usable package clause.
func goPackageName(dir string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, dir)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "values"
	}
	return name
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option       { return func(o *Options) { o.InDir = d } }
func WithInputs(g ...string) Option   { return func(o *Options) { o.Inputs = append(o.Inputs, g...) } }
func WithOutDir(d string) Option      { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option     { return func(o *Options) { o.OutFile = f } }
func WithGoPackage(p string) Option   { return func(o *Options) { o.GoPackage = p } }
func WithTarget(t string) Option      { return func(o *Options) { o.Target = t } }
func WithJarPath(p string) Option     { return func(o *Options) { o.JarPath = p } }
func WithFactoryName(n string) Option { return func(o *Options) { o.FactoryName = n } }
func WithNaming(prefix, sep string) Option {
	return func(o *Options) { o.NamePrefix, o.Separator = prefix, sep }
}
func WithAutoValueNaming() Option {
	return WithNaming(vparser.AutoValueNaming.Prefix, vparser.AutoValueNaming.Separator)
}
func WithAnnotations(names ...string) Option {
	return func(o *Options) { o.Annotations = append(o.Annotations, names...) }
}
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithMaxNestingDepth(n int) Option { return func(o *Options) { o.MaxNestingDepth = n } }
func WithConcurrency(n int) Option     { return func(o *Options) { o.Concurrency = n } }
