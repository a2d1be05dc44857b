// Package list provides the command for listing tracked repositories.
package list

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/cmd/output"
)

// AppContext defines the interface that the list command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List tracked repositories",
		Long: `List displays the reconciled repository inventory.

The inventory merges the server's repository snapshot with the
documentation index and any clone submissions that have not been
confirmed by the server yet.`,
		Example: `  docsync list                 # Table of all repositories
  docsync list -o json         # Machine-readable output
  docsync list --wide          # Include task and clone detail columns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wide, _ := cmd.Flags().GetBool("wide")
			return run(cmd, app, wide)
		},
	}

	cmd.Flags().Bool("wide", false, "Show task, working directory and branch columns")

	return cmd
}

func run(cmd *cobra.Command, app AppContext, wide bool) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}

	if err := eng.Refresh(cmd.Context()); err != nil {
		return err
	}
	views := eng.Views()

	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatWide {
		wide = true
	}
	formatter := output.NewFormatter(format)

	var data any
	switch format {
	case output.FormatTable, output.FormatWide:
		data = output.ViewsToTableData(views, wide)
	default:
		data = views
	}

	return formatter.Format(os.Stdout, data)
}
