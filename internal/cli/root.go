package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scry/internal/config"
	"scry/internal/version"
)

const usage = `
scry: a log viewer that picks the best layout for what you pipe into it

USAGE:
    <command> | scry [flags]
    scry < <file>
    scry --file <path> [--follow]
    scry --start                    start without input (waits on stdin)

EXAMPLES:
    tail -f app.log | scry          view streaming logs
    journalctl -f | scry            view systemd logs
    scry --demo                     view a synthetic stream

COMMANDS:
    scry key set <API_KEY>          store the OpenAI API key
    scry key delete                 delete the stored key
    scry version                    print version information

Run 'scry --help' for every flag.
`

// NewRootCommand builds the scry command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "scry",
		Short:         "Terminal log viewer that picks the best layout for its input",
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runViewer,
	}
	config.RegisterFlags(root.Flags())

	root.AddCommand(newKeyCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scry %s\n%s\n", version.String(), version.Runtime())
		},
	}
}
