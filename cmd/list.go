package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// errFilterNotFound indicates get found no filter with the requested name.
var errFilterNotFound = errors.New("filter not found")

// newListCommand creates the command that lists filters by name fragment.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [FRAGMENT]",
		Short: "List the account's filters, optionally only those whose name contains FRAGMENT",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment := ""
			if len(args) == 1 {
				fragment = args[0]
			}

			matches, err := admin.GetMatchingFilters(cmd.Context(), fragment)
			if err != nil {
				return err
			}

			return printFilters(cmd.OutOrStdout(), matches)
		},
	}
}

// newGetCommand creates the command that shows one filter by exact name.
func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show the filter with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := admin.GetFilter(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if filter == nil {
				return fmt.Errorf("%w: %q", errFilterNotFound, args[0])
			}

			return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
		},
	}
}

// printFilters renders filters as a table.
//
// Parameters:
//   - w: Output writer.
//   - filters: Filters to render, in order.
//
// Returns:
//   - error: Non-nil if the table cannot be written.
func printFilters(w io.Writer, filters []*types.Filter) error {
	if len(filters) == 0 {
		logrus.Info("No matching filters")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Type", "Field", "Expression")

	for _, filter := range filters {
		if err := table.Append([]string{
			filter.ID,
			filter.Name,
			filter.Type,
			filter.Field,
			filter.Expression,
		}); err != nil {
			return fmt.Errorf("failed to render filter table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render filter table: %w", err)
	}

	return nil
}
