// Package regen provides the command for regenerating documentation.
package regen

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

// AppContext defines the interface that the regen command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the regen command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "regen <name>",
		GroupID: "management",
		Short:   "Regenerate documentation for a repository",
		Long: `Regen asks the backend to regenerate documentation for a repository.

The repository's documentation status shows as generating until the
request settles.`,
		Example: `  docsync regen sqlite`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			eng, err := app.Engine()
			if err != nil {
				return err
			}

			if err := eng.Refresh(cmd.Context()); err != nil {
				return err
			}

			view, ok := findByName(eng, name)
			if !ok {
				return &errors.NotFoundError{Resource: "repository", ID: name}
			}
			if view.ID == 0 {
				return fmt.Errorf("repository %q has no server record yet, wait for the clone to finish", name)
			}

			if err := eng.Regenerate(cmd.Context(), view.ID, view.Name); err != nil {
				return err
			}

			cmd.Printf("Documentation regenerated for %s\n", view.Name)
			return nil
		},
	}
}

func findByName(eng docsync.Client, name string) (repos.View, bool) {
	for _, v := range eng.Views() {
		if v.Name == name {
			return v, true
		}
	}
	return repos.View{}, false
}
