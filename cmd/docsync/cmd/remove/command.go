// Package remove provides the command for deleting a tracked repository.
package remove

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/pkg/errors"
)

// AppContext defines the interface that the remove command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Backend() (*backend.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the remove command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name-or-url>",
		GroupID: "management",
		Short:   "Remove a repository from the backend",
		Example: `  docsync remove sqlite
  docsync remove https://github.com/sqlite/sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, app, args[0])
		},
	}
}

func run(ctx context.Context, cmd *cobra.Command, app AppContext, target string) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}

	if err := eng.Refresh(ctx); err != nil {
		return err
	}

	view, ok := eng.View(target)
	if !ok {
		for _, v := range eng.Views() {
			if v.Name == target {
				view, ok = v, true
				break
			}
		}
	}
	if !ok {
		return &errors.NotFoundError{Resource: "repository", ID: target}
	}
	if view.ID == 0 {
		return fmt.Errorf("repository %q has no server record yet, wait for the clone to finish", view.Name)
	}

	b, err := app.Backend()
	if err != nil {
		return err
	}
	if err := b.DeleteRepo(ctx, view.ID); err != nil {
		return err
	}

	cmd.Printf("Removed %s (%s)\n", view.Name, view.URL)
	return nil
}
