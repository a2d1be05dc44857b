// Package report provides the command for generating inventory reports.
package report

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/tools/report"
)

// AppContext defines the interface that the report command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the report command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "management",
		Short:   "Generate a markdown inventory report",
		Long: `Report writes a markdown summary of the reconciled inventory,
including documentation coverage and any in-flight clones.`,
		Example: `  docsync report                       # Write to stdout
  docsync report --file inventory.md   # Write to a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")

			eng, err := app.Engine()
			if err != nil {
				return err
			}
			if err := eng.Refresh(cmd.Context()); err != nil {
				return err
			}

			gen := report.New()
			if file != "" {
				if err := gen.WriteFile(file, eng.Views()); err != nil {
					return err
				}
				cmd.Printf("Report written to %s\n", file)
				return nil
			}
			return gen.Write(os.Stdout, eng.Views())
		},
	}

	cmd.Flags().String("file", "", "Write the report to a file instead of stdout")

	return cmd
}
