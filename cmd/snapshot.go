package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/valuegen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath, name, ver string

	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "generate and record a snapshot",
		Long:  "Generate value types and record the output as a versioned snapshot in the manifest",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindGenerateFlags(c)
		},
		RunE: func(c *cobra.Command, args []string) error {
			r, file, err := snapshot.Generate(c.Context(), optionsFromConfig(), manifestPath, name, ver)
			if r != nil {
				printReport(c.OutOrStdout(), r)
			}
			if err != nil {
				return err
			}
			dimColor.Fprintf(c.OutOrStdout(), "  snapshot %s -> %s\n", ver, file)
			if len(r.Failures) > 0 {
				return errFailures
			}
			return nil
		},
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "valuegen.manifest.yaml", "manifest recording snapshots")
	snapshotCmd.Flags().StringVarP(&name, "name", "n", "values", "snapshot name")
	snapshotCmd.Flags().StringVarP(&ver, "version", "v", "", "snapshot version")
	_ = snapshotCmd.MarkFlagRequired("version")
	addGenerateFlags(snapshotCmd.Flags())

	snapshotCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, s := range m.Snapshots {
				marker := " "
				switch s.Version {
				case m.CurrentVersion:
					marker = "*"
				case m.PreviousVersion:
					marker = "-"
				}
				fmt.Fprintf(c.OutOrStdout(), "%s %s %s %s (%s)\n", marker, s.Name, s.Version, s.File, plural(len(s.Types), "type"))
			}
			return nil
		},
	})
	snapshotCmd.AddCommand(&cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if diff == "" {
				okColor.Fprintln(c.OutOrStdout(), "no changes")
				return nil
			}
			fmt.Fprint(c.OutOrStdout(), diff)
			return nil
		},
	})

	return snapshotCmd
}
