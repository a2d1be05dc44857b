// Package add provides the command for submitting a repository clone.
package add

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/pkg/repos"
)

// AppContext defines the interface that the add command needs from the app.
type AppContext interface {
	Engine() (docsync.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the add command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "add <repo-url>",
		GroupID: "core",
		Short:   "Submit a repository for cloning and documentation",
		Long: `Add submits a repository URL to the backend for cloning.

The repository appears in the inventory immediately as a pending entry
and is tracked until the server snapshot confirms it.`,
		Example: `  docsync add https://github.com/sqlite/sqlite
  docsync add git@github.com:redis/redis.git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if err := repos.ValidateURL(url); err != nil {
				return err
			}

			eng, err := app.Engine()
			if err != nil {
				return err
			}

			taskID, err := eng.Track(cmd.Context(), url)
			if err != nil {
				return err
			}

			cmd.Printf("Clone submitted for %s\n", repos.NormalizeURL(url))
			cmd.Printf("  task: %s\n", taskID)
			cmd.Println("Run 'docsync status' to follow progress.")
			return nil
		},
	}
}
