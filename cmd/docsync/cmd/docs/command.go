// Package docs provides the command for listing generated documentation.
package docs

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/internal/cmd/output"
)

// AppContext defines the interface that the docs command needs from the app.
type AppContext interface {
	Backend() (*backend.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the docs command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		GroupID: "management",
		Short:   "List generated documentation",
		Example: `  docsync docs
  docsync docs -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}

			items, err := b.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)

			var data any
			switch format {
			case output.FormatTable, output.FormatWide:
				data = output.DocsToTableData(items)
			default:
				data = items
			}

			return formatter.Format(os.Stdout, data)
		},
	}
}
