package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scry/internal/config"
)

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored OpenAI API key",
		Long: `Store or delete the OpenAI API key used to pick views.

OPENAI_API_KEY takes precedence over the stored key. Without any key scry
picks views with local heuristics.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <API_KEY>",
		Short: "Store the API key in the user config directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SaveKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DeleteKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key deleted")
			return nil
		},
	})
	return cmd
}
