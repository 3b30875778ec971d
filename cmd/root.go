package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/internal/actions"
	"github.com/nicholas-fedor/gafilter/internal/flags"
	"github.com/nicholas-fedor/gafilter/internal/logging"
	"github.com/nicholas-fedor/gafilter/internal/meta"
	"github.com/nicholas-fedor/gafilter/pkg/analytics"
	"github.com/nicholas-fedor/gafilter/pkg/metrics"
	"github.com/nicholas-fedor/gafilter/pkg/notifications"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// errNegativeCooldown indicates a negative --cooldown value.
var errNegativeCooldown = errors.New("cooldown must not be negative")

// admin runs the filter operations of the executed subcommand.
//
// It is created in preRun from the account settings, the management client and the notifier.
var admin *actions.Admin

// notifier announces created and removed filters. It is closed when the command finishes.
var notifier types.Notifier

// appMetrics counts the changes made during the run.
var appMetrics *metrics.Metrics

// metricsTextfile is the node_exporter textfile written when the command finishes, if set.
var metricsTextfile string

// newClient creates the management API client. Tests replace it with a mock.
var newClient = func(ctx context.Context, opts analytics.Options) (types.Client, error) {
	client, err := analytics.NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// rootCmd represents the root command for the gafilter CLI, serving as the entry point for all subcommands.
var rootCmd = NewRootCommand()

// NewRootCommand creates the root command with all flags and subcommands registered.
//
// Returns:
//   - *cobra.Command: A pointer to the fully configured root command, ready for execution.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gafilter",
		Short: "Manages Google Analytics view filters",
		Long: "\ngafilter creates, lists and removes Google Analytics view filters.\n" +
			"Long exclusion lists are split into as many filters as the 255 character expression limit requires.",
		PersistentPreRunE: preRun,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           meta.Version,
	}

	flags.SetDefaults()
	flags.RegisterAnalyticsFlags(root)
	flags.RegisterSystemFlags(root)
	flags.RegisterNotificationFlags(root)

	root.AddCommand(
		newHostnameCommand(),
		newExcludeCommand(),
		newLowercaseCommand(),
		newCustomExcludeCommand(),
		newAdvancedCommand(),
		newDeleteCommand(),
		newListCommand(),
		newGetCommand(),
		newExcludeQueryParamsCommand(),
	)

	return root
}

// Execute runs the root command and manages any errors encountered during its execution.
//
// Interrupts cancel the context passed to the subcommands, which stops a running batch at the
// next remote call or cooldown.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()
	finish()

	if err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
}

// preRun prepares logging, settings, the management client and the notifier before a subcommand runs.
//
// Parameters:
//   - cmd: The cobra.Command instance being executed, providing access to parsed flags.
//   - _: Positional arguments, handled by the subcommand.
//
// Returns:
//   - error: Non-nil if the configuration is invalid or the client cannot be created.
func preRun(cmd *cobra.Command, _ []string) error {
	flagSet := cmd.Flags()
	flags.ProcessFlagAliases(flagSet)

	// Setup logging based on flags such as --debug, --trace, and --log-format.
	if err := flags.SetupLogging(flagSet); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	flags.GetSecretsFromFiles(cmd)

	settings, err := flags.ReadSettings(flagSet)
	if err != nil {
		return err
	}

	cooldown, _ := flagSet.GetDuration("cooldown")
	if cooldown < 0 {
		return fmt.Errorf("%w: %s", errNegativeCooldown, cooldown)
	}

	credentialsFile, _ := flagSet.GetString("credentials-file")
	endpoint, _ := flagSet.GetString("api-endpoint")
	qps, _ := flagSet.GetFloat64("api-qps")
	metricsTextfile, _ = flagSet.GetString("metrics-textfile")

	client, err := newClient(cmd.Context(), analytics.Options{
		CredentialsFile:  credentialsFile,
		Endpoint:         endpoint,
		UserAgent:        meta.UserAgent,
		QueriesPerSecond: qps,
	})
	if err != nil {
		return fmt.Errorf("failed to create management client: %w", err)
	}

	notifier = notifications.NewNotifier(cmd)
	appMetrics = metrics.Default()
	admin = actions.NewAdmin(client, settings, notifier, actions.NewPacer(cooldown), appMetrics)

	logging.WriteStartupMessage(cmd, settings, notifier, cooldown, meta.Version)

	return nil
}

// finish flushes notifications and writes the metrics textfile.
func finish() {
	if notifier != nil {
		notifier.Close()
	}

	if metricsTextfile != "" && appMetrics != nil {
		if err := metrics.WriteTextfile(metricsTextfile, appMetrics.Gatherer()); err != nil {
			logrus.WithError(err).Warn("Failed to write metrics textfile")
		}
	}
}
