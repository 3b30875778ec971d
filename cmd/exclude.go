package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/internal/flags"
	"github.com/nicholas-fedor/gafilter/pkg/filters"
	"github.com/nicholas-fedor/gafilter/pkg/lists"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

var (
	// errNoValues indicates a batch command received no values from any source.
	errNoValues = errors.New("no values given; pass them as arguments, --from-file or --from-git")
	// errExpressionWithValues indicates --expression was combined with a value list.
	errExpressionWithValues = errors.New("--expression cannot be combined with values")
)

// newExcludeCommand creates the command that turns a value list into batched exclude filters.
func newExcludeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "exclude NAME [VALUES...]",
		Short: "Create exclude filters from a list of values, split to fit the expression limit",
		Long: "Create exclude filters from a list of values.\n\n" +
			"Values are joined with '|' into expressions of at most 255 characters. When a list does not fit,\n" +
			"filters are named \"NAME 01\", \"NAME 02\" and so on. Values can be given as arguments,\n" +
			"read from files (--from-file) or from files in git repositories (--from-git).",
		Args: cobra.MinimumNArgs(1),
		RunE: runExclude,
	}

	command.Flags().String("kind", "", "Value kind: "+batchKindNames())
	command.Flags().String("expression", "", "Create a single filter named NAME from a ready expression")
	_ = command.MarkFlagRequired("kind")

	flags.RegisterListFlags(command)

	return command
}

// runExclude creates the filters for the exclude command.
func runExclude(cmd *cobra.Command, args []string) error {
	name := args[0]
	kindName, _ := cmd.Flags().GetString("kind")

	kind, err := types.ParseKind(kindName)
	if err != nil {
		return err
	}

	expression, _ := cmd.Flags().GetString("expression")
	if expression != "" {
		if len(args) > 1 || hasListSources(cmd) {
			return errExpressionWithValues
		}

		filter, err := admin.CreateExcludeFilter(cmd.Context(), kind, name, expression)
		if err != nil {
			return err
		}

		return printFilters(cmd.OutOrStdout(), []*types.Filter{filter})
	}

	values, err := loadValues(cmd.Context(), cmd, args[1:])
	if err != nil {
		return err
	}

	created, err := admin.CreateFiltersForList(cmd.Context(), values, name, kind)
	if len(created) > 0 {
		if printErr := printFilters(cmd.OutOrStdout(), created); printErr != nil {
			logrus.WithError(printErr).Warn("Failed to print created filters")
		}
	}

	if err != nil {
		return fmt.Errorf("created %d filter(s) before failing: %w", len(created), err)
	}

	return nil
}

// loadValues gathers values from arguments, files and git repositories, in that order.
func loadValues(ctx context.Context, cmd *cobra.Command, args []string) ([]string, error) {
	sources, err := listSources(cmd, args)
	if err != nil {
		return nil, err
	}

	values, err := lists.Load(ctx, sources...)
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, errNoValues
	}

	return values, nil
}

// listSources builds the value sources named by the command line.
func listSources(cmd *cobra.Command, args []string) ([]lists.Source, error) {
	flagSet := cmd.Flags()

	var sources []lists.Source
	if len(args) > 0 {
		sources = append(sources, lists.StaticSource(args))
	}

	files, _ := flagSet.GetStringArray("from-file")
	for _, path := range files {
		sources = append(sources, lists.FileSource{Path: path, Stdin: cmd.InOrStdin()})
	}

	repos, _ := flagSet.GetStringArray("from-git")
	if len(repos) == 0 {
		return sources, nil
	}

	token, _ := flagSet.GetString("git-token")
	username, _ := flagSet.GetString("git-username")
	password, _ := flagSet.GetString("git-password")
	sshKey, _ := flagSet.GetString("git-ssh-key")

	auth, err := lists.GitAuthFromFlags(token, username, password, sshKey)
	if err != nil {
		return nil, err
	}

	for _, spec := range repos {
		source, err := lists.ParseGitSource(spec, auth)
		if err != nil {
			return nil, err
		}

		sources = append(sources, source)
	}

	return sources, nil
}

// hasListSources reports whether --from-file or --from-git was given.
func hasListSources(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("from-file") || cmd.Flags().Changed("from-git")
}

// batchKindNames lists the kinds accepted by the exclude command.
func batchKindNames() string {
	kinds := filters.BatchKinds()

	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	return strings.Join(names, ", ")
}
