package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/valuegen/pkg/action/generate"
	"github.com/cmmoran/valuegen/pkg/parser"
)

var errFailures = errors.New("some declarations could not be generated")

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// generateFlags are the flags shared by generate and snapshot, keyed by the
// config path they override.
var generateFlags = map[string]string{
	"generate.in_dir":            "input-directory",
	"generate.inputs":            "inputs",
	"generate.out_dir":           "output-directory",
	"generate.out_file":          "output-file",
	"generate.go_package":        "go-package",
	"generate.target":            "target",
	"generate.jar_path":          "jar",
	"generate.name_prefix":       "prefix",
	"generate.separator":         "separator",
	"generate.annotations":       "annotations",
	"generate.exclude_types":     "exclude-types",
	"generate.factory_name":      "factory",
	"generate.max_nesting_depth": "max-depth",
	"generate.concurrency":       "concurrency",
}

func addGenerateFlags(fs *pflag.FlagSet) {
	def := parser.NewOptions()
	fs.StringP("input-directory", "i", def.InDir, "directory to scan")
	fs.StringSlice("inputs", def.Inputs, "globs, relative to the input directory, selecting .java and .go files")
	fs.StringP("output-directory", "o", def.OutDir, "directory to write generated values")
	fs.StringP("output-file", "f", def.OutFile, "go file the values are written to")
	fs.String("go-package", "", "package clause of the go output (default: output directory name)")
	fs.String("target", def.Target, "output to produce: go, java or both")
	fs.String("jar", "", "write java output as a source jar (.jar or .srcjar)")
	fs.String("prefix", def.NamePrefix, "prefix of every generated type name")
	fs.String("separator", def.Separator, "separator between the names of nested declarations")
	fs.StringSliceP("annotations", "a", def.Annotations, "annotations selecting java declarations")
	fs.StringSliceP("exclude-types", "t", []string{}, "exclude named declarations")
	fs.String("factory", def.FactoryName, "name of the factory method forwarded to the constructor")
	fs.Int("max-depth", 0, "reject declarations nested deeper than this (0: unbounded)")
	fs.Int("concurrency", 0, "parallel analyses (0: GOMAXPROCS)")
}

// bindGenerateFlags makes the flags of c override the generate config
// section. It runs before each command so the last one invoked wins.
func bindGenerateFlags(c *cobra.Command) error {
	for key, flag := range generateFlags {
		if err := viper.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// optionsFromConfig reads the generate section, with flags already bound.
func optionsFromConfig() *parser.Options {
	return &parser.Options{
		InDir:           viper.GetString("generate.in_dir"),
		Inputs:          viper.GetStringSlice("generate.inputs"),
		OutDir:          viper.GetString("generate.out_dir"),
		OutFile:         viper.GetString("generate.out_file"),
		GoPackage:       viper.GetString("generate.go_package"),
		Target:          viper.GetString("generate.target"),
		JarPath:         viper.GetString("generate.jar_path"),
		NamePrefix:      viper.GetString("generate.name_prefix"),
		Separator:       viper.GetString("generate.separator"),
		Annotations:     viper.GetStringSlice("generate.annotations"),
		ExcludeTypes:    viper.GetStringSlice("generate.exclude_types"),
		FactoryName:     viper.GetString("generate.factory_name"),
		MaxNestingDepth: viper.GetInt("generate.max_nesting_depth"),
		Concurrency:     viper.GetInt("generate.concurrency"),
	}
}

func NewGenerateCommand() *cobra.Command {
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate value types",
		Long:  "Generate immutable value implementations for every annotated declaration",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindGenerateFlags(c)
		},
		RunE: func(c *cobra.Command, args []string) error {
			r, err := generate.Generate(c.Context(), optionsFromConfig())
			if err != nil {
				return err
			}
			printReport(c.OutOrStdout(), r)
			if len(r.Failures) > 0 {
				return errFailures
			}
			return nil
		},
	}
	addGenerateFlags(generateCmd.Flags())

	return generateCmd
}
