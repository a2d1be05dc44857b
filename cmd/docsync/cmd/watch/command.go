// Package watch provides the command that follows inventory changes.
package watch

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/cmd/output"
	"github.com/agentstation/docsync/pkg/repos"
)

// AppContext defines the interface that the watch command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the watch command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Follow inventory changes until interrupted",
		Long: `Watch runs the refresh scheduler and task watcher in the foreground
and reprints the inventory whenever it changes. Stop with Ctrl-C.`,
		Example: `  docsync watch`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.Logger()

			eng, err := app.Engine()
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)

			updates := make(chan []repos.View, 1)
			eng.OnViewsUpdated(func(views []repos.View) {
				// Keep only the latest update when the printer lags.
				select {
				case updates <- views:
				default:
					select {
					case <-updates:
					default:
					}
					select {
					case updates <- views:
					default:
					}
				}
			})
			eng.OnClonesResolved(func(ids []string) {
				logger.Info().Strs("ids", ids).Msg("Clones confirmed by snapshot")
			})
			eng.OnClonesFailed(func(ids []string) {
				logger.Warn().Strs("ids", ids).Msg("Clones failed")
			})

			if err := eng.Refresh(cmd.Context()); err != nil {
				logger.Warn().Err(err).Msg("Initial refresh failed")
			}

			if err := eng.AutoRefreshOn(); err != nil {
				return err
			}
			defer func() { _ = eng.AutoRefreshOff() }()

			if err := eng.TaskWatchOn(); err != nil {
				return err
			}
			defer func() { _ = eng.TaskWatchOff() }()

			printViews(formatter, format, eng.Views())

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case views := <-updates:
					printViews(formatter, format, views)
				}
			}
		},
	}
}

func printViews(formatter output.Formatter, format output.Format, views []repos.View) {
	var data any
	switch format {
	case output.FormatTable, output.FormatWide:
		data = output.ViewsToTableData(views, format == output.FormatWide)
	default:
		data = views
	}
	_ = formatter.Format(os.Stdout, data)
}
