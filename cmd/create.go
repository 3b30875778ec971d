package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// newHostnameCommand creates the command that includes only traffic to the configured site.
func newHostnameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hostname NAME",
		Short: "Create a filter that includes only hits on the configured --site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := admin.CreateHostnameFilter(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
		},
	}
}

// newLowercaseCommand creates the command that lowercases a field.
func newLowercaseCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "lowercase NAME",
		Short: "Create a filter that lowercases a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, _ := cmd.Flags().GetString("field")

			filter, err := admin.CreateLowercaseFilter(cmd.Context(), args[0], field)
			if err != nil {
				return err
			}

			return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
		},
	}

	command.Flags().String("field", "", "Field to lowercase, e.g. CAMPAIGN_SOURCE or PAGE_REQUEST_URI")
	_ = command.MarkFlagRequired("field")

	return command
}

// newCustomExcludeCommand creates the command that excludes hits matching an expression on any field.
func newCustomExcludeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "custom-exclude NAME",
		Short: "Create an exclude filter on any field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, _ := cmd.Flags().GetString("field")
			expression, _ := cmd.Flags().GetString("expression")

			filter, err := admin.CreateCustomExcludeFilter(cmd.Context(), args[0], field, expression)
			if err != nil {
				return err
			}

			return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
		},
	}

	command.Flags().String("field", "", "Field to match, e.g. PAGE_REQUEST_URI")
	command.Flags().String("expression", "", "Regular expression of hits to exclude")
	_ = command.MarkFlagRequired("field")
	_ = command.MarkFlagRequired("expression")

	return command
}

// newAdvancedCommand creates the command that builds a field from extractions of two others.
func newAdvancedCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "advanced NAME",
		Short: "Create an advanced filter that extracts values from fields A and B into an output field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flagSet := cmd.Flags()

			var details types.AdvancedDetails

			details.FieldA, _ = flagSet.GetString("field-a")
			details.ExtractA, _ = flagSet.GetString("extract-a")
			details.FieldARequired, _ = flagSet.GetBool("field-a-required")
			details.FieldB, _ = flagSet.GetString("field-b")
			details.ExtractB, _ = flagSet.GetString("extract-b")
			details.FieldBRequired, _ = flagSet.GetBool("field-b-required")
			details.OutputToField, _ = flagSet.GetString("output-field")
			details.OutputConstructor, _ = flagSet.GetString("output-constructor")
			details.CaseSensitive, _ = flagSet.GetBool("case-sensitive")

			filter, err := admin.CreateAdvancedFilter(cmd.Context(), args[0], details)
			if err != nil {
				return err
			}

			return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
		},
	}

	flagSet := command.Flags()
	flagSet.String("field-a", "", "Field A, e.g. PAGE_HOSTNAME")
	flagSet.String("extract-a", "", "Regular expression extracting from field A")
	flagSet.Bool("field-a-required", false, "Field A must match for the filter to apply")
	flagSet.String("field-b", "", "Field B, e.g. PAGE_REQUEST_URI")
	flagSet.String("extract-b", "", "Regular expression extracting from field B")
	flagSet.Bool("field-b-required", false, "Field B must match for the filter to apply")
	flagSet.String("output-field", "", "Field receiving the constructed value, e.g. PAGE_REQUEST_URI")
	flagSet.String("output-constructor", "", "Output template such as $A1$B1")
	flagSet.Bool("case-sensitive", false, "Match extractions case-sensitively")
	_ = command.MarkFlagRequired("field-a")
	_ = command.MarkFlagRequired("output-field")

	return command
}
