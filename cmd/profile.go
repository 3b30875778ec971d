package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newExcludeQueryParamsCommand creates the command that adds query parameters to the view's exclusion list.
func newExcludeQueryParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exclude-query-params PARAMS",
		Short: "Add comma-separated query parameters to the view's excluded URL query parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := admin.AddExcludeQueryParameters(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(added) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No new query parameters")
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Added: "+strings.Join(added, ","))
			}

			return err
		},
	}
}
