package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// errEmptyFragment guards against removing every filter of the account.
var errEmptyFragment = errors.New("name fragment must not be empty")

// newDeleteCommand creates the command that removes filters by name fragment.
func newDeleteCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "delete FRAGMENT",
		Short: "Remove every filter whose name contains FRAGMENT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errEmptyFragment
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if dryRun {
				matches, err := admin.GetMatchingFilters(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printFilters(cmd.OutOrStdout(), matches)
			}

			removed, err := admin.DeleteFilters(cmd.Context(), args[0])
			if len(removed) > 0 {
				if printErr := printFilters(cmd.OutOrStdout(), removed); printErr != nil {
					return errors.Join(err, printErr)
				}
			}

			return err
		},
	}

	command.Flags().Bool("dry-run", false, "Only list the filters that would be removed")

	return command
}
