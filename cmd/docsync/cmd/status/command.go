// Package status provides the command for inspecting in-flight clones.
package status

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/cmd/output"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

// AppContext defines the interface that the status command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the status command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "status [task-id]",
		GroupID: "core",
		Short:   "Show clone submissions awaiting server confirmation",
		Long: `Status lists tracked clone submissions that the server snapshot has
not confirmed yet, with their last observed task state. With a task id
only that submission is shown.`,
		Example: `  docsync status
  docsync status 0f68f1a2-8f3c-4b1e-9a07-2d52f0c3b9aa
  docsync status -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := app.Engine()
			if err != nil {
				return err
			}

			// Refresh first so already confirmed clones are dropped.
			if err := eng.Refresh(cmd.Context()); err != nil {
				return err
			}

			pending := eng.Pending()
			if len(args) == 1 {
				pending = lo.Filter(pending, func(p repos.PendingClone, _ int) bool {
					return p.TaskID == args[0]
				})
				if len(pending) == 0 {
					return &errors.NotFoundError{Resource: "task", ID: args[0]}
				}
			}
			if len(pending) == 0 {
				cmd.Println("No clones in flight.")
				return nil
			}

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)

			var data any
			switch format {
			case output.FormatTable, output.FormatWide:
				data = output.PendingToTableData(pending)
			default:
				data = pending
			}

			return formatter.Format(os.Stdout, data)
		},
	}
}
