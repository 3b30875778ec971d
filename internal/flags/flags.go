package flags

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// defaultCooldown is the default pause between remote writes.
const defaultCooldown = time.Second

// defaultQueriesPerSecond is the default management API request rate.
const defaultQueriesPerSecond = 10.0

// errInvalidLogFormat indicates an invalid log format was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogFormat = errors.New("invalid log format specified")

// errInvalidLogLevel indicates an invalid log level was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogLevel = errors.New("invalid log level specified")

// errOpenFileFailed indicates a failure to open a file for reading secrets.
// It is used in getSecretFromFile to wrap os.Open errors.
var errOpenFileFailed = errors.New("failed to open secret file")

// errCloseFileFailed indicates a failure to close a file after reading secrets.
// It is used in getSecretFromFile to wrap file.Close errors.
var errCloseFileFailed = errors.New("failed to close secret file")

// errReplaceSliceFailed indicates a failure to replace a slice value in a flag.
// It is used in getSecretFromFile to wrap SliceValue.Replace errors.
var errReplaceSliceFailed = errors.New("failed to replace slice value in flag")

// errReadFileFailed indicates a failure to read a file’s contents.
// It is used in getSecretFromFile to wrap os.ReadFile errors.
var errReadFileFailed = errors.New("failed to read secret file")

// errSetFlagFailed indicates a failure to get or set a flag’s value.
var errSetFlagFailed = errors.New("failed to set flag value")

// secretFlags may hold a path to a file containing the actual value.
var secretFlags = []string{
	"notification-url",
	"git-token",
	"git-password",
}

// RegisterAnalyticsFlags adds flags selecting the analytics account and view to the root command.
// These flags also configure credentials and the pacing of remote writes.
func RegisterAnalyticsFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.String(
		"account-id",
		envString("GAFILTER_ACCOUNT_ID"),
		"Analytics account ID the filters belong to")

	flags.String(
		"property-id",
		envString("GAFILTER_PROPERTY_ID"),
		"Web property ID, e.g. UA-12345-1")

	flags.String(
		"profile-id",
		envString("GAFILTER_PROFILE_ID"),
		"Reporting view (profile) ID filters are linked to")

	flags.String(
		"site",
		envString("GAFILTER_SITE"),
		"Site hostname used by the hostname include filter")

	flags.String(
		"credentials-file",
		envString("GAFILTER_CREDENTIALS_FILE"),
		"Service account or OAuth client JSON; application default credentials are used when empty")

	flags.String(
		"api-endpoint",
		envString("GAFILTER_API_ENDPOINT"),
		"Override the management API base URL")

	flags.Float64(
		"api-qps",
		envFloat("GAFILTER_API_QPS"),
		"Maximum management API requests per second; 0 disables throttling")

	flags.Duration(
		"cooldown",
		envDuration("GAFILTER_COOLDOWN"),
		"Pause between consecutive filter writes; 0 disables pacing")

	flags.String(
		"metrics-textfile",
		envString("GAFILTER_METRICS_TEXTFILE"),
		"Write run metrics to this node_exporter textfile when the command finishes")
}

// RegisterSystemFlags adds flags that control logging and startup output to the root command.
func RegisterSystemFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.BoolP(
		"debug",
		"d",
		envBool("GAFILTER_DEBUG"),
		"Enable debug mode with verbose logging")

	flags.Bool(
		"trace",
		envBool("GAFILTER_TRACE"),
		"Enable trace mode with very verbose logging - caution, exposes credentials")

	flags.String(
		"log-level",
		envString("GAFILTER_LOG_LEVEL"),
		"The maximum log level that will be written to STDERR. Possible values: panic, fatal, error, warn, info, debug or trace")

	flags.String(
		"log-format",
		envString("GAFILTER_LOG_FORMAT"),
		"Sets what logging format to use for console output. Possible values: Auto, LogFmt, Pretty, JSON")

	flags.Bool(
		"no-color",
		envBool("NO_COLOR"),
		"Disable ANSI color escape codes in log output")

	flags.Bool(
		"no-startup-message",
		envBool("GAFILTER_NO_STARTUP_MESSAGE"),
		"Do not log the startup summary")
}

// RegisterNotificationFlags adds flags for configuring change notifications to the root command.
func RegisterNotificationFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringArray(
		"notification-url",
		envStringSlice("GAFILTER_NOTIFICATION_URL"),
		"The shoutrrr URL to send notifications to")

	flags.String(
		"notification-template",
		envString("GAFILTER_NOTIFICATION_TEMPLATE"),
		"The shoutrrr text/template for the messages, or the name of a built-in template")

	flags.Int(
		"notifications-delay",
		envInt("GAFILTER_NOTIFICATIONS_DELAY"),
		"Delay before sending notifications, expressed in seconds")

	flags.String(
		"notifications-hostname",
		envString("GAFILTER_NOTIFICATIONS_HOSTNAME"),
		"Custom hostname for notification titles")

	flags.String(
		"notification-title-tag",
		envString("GAFILTER_NOTIFICATION_TITLE_TAG"),
		"Title prefix tag for notifications")

	flags.Bool(
		"notification-log-stdout",
		envBool("GAFILTER_NOTIFICATION_LOG_STDOUT"),
		"Write notification logs to stdout instead of logging (to stderr)")
}

// RegisterListFlags adds value-list source flags to a batch command.
func RegisterListFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringArray(
		"from-file",
		nil,
		"Read values from a file, one per line; '-' reads stdin")

	flags.StringArray(
		"from-git",
		nil,
		"Read values from a file in a git repository: <repo-url>//<path>[@ref]")

	flags.String(
		"git-token",
		envString("GAFILTER_GIT_TOKEN"),
		"Token for HTTPS access to list repositories")

	flags.String(
		"git-username",
		envString("GAFILTER_GIT_USERNAME"),
		"Username for HTTPS access to list repositories")

	flags.String(
		"git-password",
		envString("GAFILTER_GIT_PASSWORD"),
		"Password for HTTPS access to list repositories")

	flags.String(
		"git-ssh-key",
		envString("GAFILTER_GIT_SSH_KEY"),
		"Private key file for SSH access to list repositories")
}

// envString retrieves a string value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envString(key string) string {
	viper.MustBindEnv(key)

	return viper.GetString(key)
}

// envStringSlice retrieves a string slice from an environment variable via Viper.
// It binds the key to the environment and returns its values.
func envStringSlice(key string) []string {
	viper.MustBindEnv(key)

	return viper.GetStringSlice(key)
}

// envInt retrieves an integer value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envInt(key string) int {
	viper.MustBindEnv(key)

	return viper.GetInt(key)
}

// envFloat retrieves a float value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envFloat(key string) float64 {
	viper.MustBindEnv(key)

	return viper.GetFloat64(key)
}

// envBool retrieves a boolean value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envBool(key string) bool {
	viper.MustBindEnv(key)

	return viper.GetBool(key)
}

// envDuration retrieves a duration value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envDuration(key string) time.Duration {
	viper.MustBindEnv(key)

	return viper.GetDuration(key)
}

// SetDefaults configures default values for environment variables.
// It must run before the Register functions, which read the environment when defining flags.
func SetDefaults() {
	viper.AutomaticEnv()
	viper.SetDefault("GAFILTER_COOLDOWN", defaultCooldown)
	viper.SetDefault("GAFILTER_API_QPS", defaultQueriesPerSecond)
	viper.SetDefault("GAFILTER_NOTIFICATION_URL", []string{})
	viper.SetDefault("GAFILTER_LOG_LEVEL", "info")
	viper.SetDefault("GAFILTER_LOG_FORMAT", "auto")
}

// ReadSettings collects the account, property, view and site the command operates on.
//
// Parameters:
//   - flags: Parsed flag set containing the analytics flags.
//
// Returns:
//   - types.Settings: Collected settings.
//   - error: Non-nil wrapping types.ErrMissingSetting if the account, property or view is empty.
func ReadSettings(flags *pflag.FlagSet) (types.Settings, error) {
	var settings types.Settings

	targets := []struct {
		name     string
		value    *string
		required bool
	}{
		{"account-id", &settings.AccountID, true},
		{"property-id", &settings.PropertyID, true},
		{"profile-id", &settings.ProfileID, true},
		{"site", &settings.Site, false},
	}

	for _, target := range targets {
		value, err := flags.GetString(target.name)
		if err != nil {
			return types.Settings{}, fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}

		value = strings.TrimSpace(value)
		if target.required && value == "" {
			return types.Settings{}, fmt.Errorf("%w: --%s", types.ErrMissingSetting, target.name)
		}

		*target.value = value
	}

	return settings, nil
}

// GetSecretsFromFiles replaces flag values with file contents if they reference files.
// Secret flags the command does not define are skipped.
func GetSecretsFromFiles(cmd *cobra.Command) {
	flags := cmd.Flags()

	for _, secret := range secretFlags {
		if err := getSecretFromFile(flags, secret); err != nil {
			logrus.Fatalf("failed to get secret from flag %v: %s", secret, err)
		}
	}
}

// getSecretFromFile updates a flag’s value with file contents if it references a file.
// It handles both string and slice flags, returning an error if file operations fail.
func getSecretFromFile(flags *pflag.FlagSet, secret string) error {
	flag := flags.Lookup(secret)
	if flag == nil {
		return nil
	}

	if sliceValue, ok := flag.Value.(pflag.SliceValue); ok {
		oldValues := sliceValue.GetSlice()
		values := make([]string, 0, len(oldValues))

		for _, value := range oldValues {
			if value == "" || !isFilePath(value) {
				values = append(values, value)

				continue
			}

			fileValues, err := readSecretLines(value)
			if err != nil {
				return err
			}

			values = append(values, fileValues...)
		}

		if err := sliceValue.Replace(values); err != nil {
			return fmt.Errorf("%w: %w", errReplaceSliceFailed, err)
		}

		return nil
	}

	value := flag.Value.String()
	if value != "" && isFilePath(value) {
		content, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errReadFileFailed, err)
		}

		if err := flags.Set(secret, strings.TrimSpace(string(content))); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	return nil
}

// readSecretLines returns the non-empty lines of a secret file.
func readSecretLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errOpenFileFailed, err)
	}

	var values []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			values = append(values, line)
		}
	}

	if err := scanner.Err(); err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("%w: %w", errReadFileFailed, err)
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", errCloseFileFailed, err)
	}

	return values, nil
}

// isFilePath determines if a string likely represents a file path.
// It checks for file existence, avoiding false positives from URLs or invalid Windows paths.
func isFilePath(path string) bool {
	firstColon := strings.IndexRune(path, ':')
	if firstColon != 1 && firstColon != -1 {
		// If ':' exists but isn’t the second character, it’s likely not a file path (e.g., URLs).
		return false
	}

	_, err := os.Stat(path)

	return !errors.Is(err, os.ErrNotExist)
}

// ProcessFlagAliases applies the debug and trace shortcuts to the log level.
func ProcessFlagAliases(flags *pflag.FlagSet) {
	if flagIsEnabled(flags, "debug") {
		if err := flags.Set("log-level", "debug"); err != nil {
			logrus.Errorf("Failed to set log-level flag: %v", err)
		}
	}

	if flagIsEnabled(flags, "trace") {
		if err := flags.Set("log-level", "trace"); err != nil {
			logrus.Errorf("Failed to set log-level flag: %v", err)
		}
	}
}

// SetupLogging configures the global logger based on log-related flags.
// It sets the log format and level, returning an error for invalid configurations.
func SetupLogging(flags *pflag.FlagSet) error {
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if err := configureLogFormat(logFormat, noColor); err != nil {
		return err
	}

	rawLogLevel, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	logLevel, err := logrus.ParseLevel(rawLogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	logrus.SetLevel(logLevel)

	return nil
}

// configureLogFormat sets the logrus formatter based on the specified format and color preference.
// It returns an error if the format is invalid.
func configureLogFormat(logFormat string, noColor bool) error {
	switch strings.ToLower(logFormat) {
	case "auto":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:             noColor,
			EnvironmentOverrideColors: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logfmt":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "pretty":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !noColor,
			FullTimestamp: false,
		})
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, logFormat)
	}

	return nil
}

// flagIsEnabled checks if a boolean flag is set to true.
// It exits with a fatal error if the flag is not defined.
func flagIsEnabled(flags *pflag.FlagSet, name string) bool {
	value, err := flags.GetBool(name)
	if err != nil {
		logrus.Fatalf("The flag %q is not defined", name)
	}

	return value
}
