package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync/cmd/docsync/cmd/add"
	"github.com/agentstation/docsync/cmd/docsync/cmd/docs"
	"github.com/agentstation/docsync/cmd/docsync/cmd/list"
	"github.com/agentstation/docsync/cmd/docsync/cmd/regen"
	"github.com/agentstation/docsync/cmd/docsync/cmd/remove"
	"github.com/agentstation/docsync/cmd/docsync/cmd/report"
	"github.com/agentstation/docsync/cmd/docsync/cmd/serve"
	"github.com/agentstation/docsync/cmd/docsync/cmd/status"
	"github.com/agentstation/docsync/cmd/docsync/cmd/watch"
)

// CreateListCommand creates the list command with app dependencies.
func (a *App) CreateListCommand() *cobra.Command {
	return list.NewCommand(a)
}

// CreateAddCommand creates the add command with app dependencies.
func (a *App) CreateAddCommand() *cobra.Command {
	return add.NewCommand(a)
}

// CreateStatusCommand creates the status command with app dependencies.
func (a *App) CreateStatusCommand() *cobra.Command {
	return status.NewCommand(a)
}

// CreateServeCommand creates the serve command with app dependencies.
func (a *App) CreateServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// CreateWatchCommand creates the watch command with app dependencies.
func (a *App) CreateWatchCommand() *cobra.Command {
	return watch.NewCommand(a)
}

// CreateRemoveCommand creates the remove command with app dependencies.
func (a *App) CreateRemoveCommand() *cobra.Command {
	return remove.NewCommand(a)
}

// CreateRegenCommand creates the regen command with app dependencies.
func (a *App) CreateRegenCommand() *cobra.Command {
	return regen.NewCommand(a)
}

// CreateDocsCommand creates the docs command with app dependencies.
func (a *App) CreateDocsCommand() *cobra.Command {
	return docs.NewCommand(a)
}

// CreateReportCommand creates the report command with app dependencies.
func (a *App) CreateReportCommand() *cobra.Command {
	return report.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("docsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
