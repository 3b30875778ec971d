// Package flags manages command-line flags and environment variables for gafilter configuration.
// It configures the analytics account, logging, notifications and value-list sources via Cobra and Viper.
//
// Key components:
//   - RegisterAnalyticsFlags: Adds account, view, credentials and pacing flags.
//   - RegisterSystemFlags: Adds logging flags.
//   - RegisterNotificationFlags: Adds notification settings.
//   - RegisterListFlags: Adds value-list source flags to batch commands.
//   - ReadSettings: Collects the account, property, view and site settings.
//   - SetupLogging: Configures logrus based on flags.
//
// Usage example:
//
//	cmd := &cobra.Command{}
//	flags.SetDefaults()
//	flags.RegisterSystemFlags(cmd)
//	err := flags.SetupLogging(cmd.PersistentFlags())
//	if err != nil {
//	    logrus.WithError(err).Fatal("Logging setup failed")
//	}
//
// The package integrates with Cobra for flag parsing, Viper for environment variable binding,
// and logrus for logging configuration errors.
package flags
