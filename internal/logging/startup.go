// Package logging provides functions for logging startup information for gafilter commands.
// It reports the version, the targeted analytics view, notification setup and pacing.
package logging

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/internal/util"
	"github.com/nicholas-fedor/gafilter/pkg/notifications"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// WriteStartupMessage logs startup information based on configuration flags.
//
// Parameters:
//   - c: The cobra.Command instance, providing access to flags like --no-startup-message.
//   - settings: Account, property and view the command operates on.
//   - notifier: The notification sink, or nil.
//   - cooldown: Pause between remote writes.
//   - version: The version string to include in the message.
func WriteStartupMessage(
	c *cobra.Command,
	settings types.Settings,
	notifier types.Notifier,
	cooldown time.Duration,
	version string,
) {
	noStartupMessage, _ := c.Flags().GetBool("no-startup-message")
	if noStartupMessage {
		return
	}

	startupLog := SetupStartupLogger(noStartupMessage)

	startupLog.Info("gafilter ", version)

	startupLog.WithFields(logrus.Fields{
		"account":  settings.AccountID,
		"property": settings.PropertyID,
		"profile":  settings.ProfileID,
	}).Info("Managing filters for analytics view")

	var notifierNames []string
	if notifier != nil {
		notifierNames = notifier.GetNames()
	}

	LogNotifierInfo(startupLog, notifierNames)
	LogCooldownInfo(startupLog, cooldown)

	// Warn about trace-level logging if enabled, as it may expose sensitive data.
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		startupLog.Warn(
			"Trace level enabled: log will include sensitive information as credentials and tokens",
		)
	}
}

// SetupStartupLogger returns the entry startup messages are written to.
//
// Suppressed messages are written through the local notification log, which is never forwarded.
func SetupStartupLogger(noStartupMessage bool) *logrus.Entry {
	if noStartupMessage {
		return notifications.LocalLog
	}

	return logrus.NewEntry(logrus.StandardLogger())
}

// LogNotifierInfo logs details about the notification setup.
//
// Parameters:
//   - log: The logrus.Entry used to write the notification information.
//   - notifierNames: A slice of strings representing the names of configured notifiers.
func LogNotifierInfo(log *logrus.Entry, notifierNames []string) {
	if len(notifierNames) > 0 {
		log.Info("Using notifications: " + strings.Join(notifierNames, ", "))
	} else {
		log.Info("Using no notifications")
	}
}

// LogCooldownInfo logs the pause applied between remote writes.
func LogCooldownInfo(log *logrus.Entry, cooldown time.Duration) {
	if cooldown <= 0 {
		log.Info("Write pacing disabled")

		return
	}

	formatted := util.FormatDuration(cooldown)
	if cooldown < time.Second {
		formatted = cooldown.String()
	}

	log.Info("Waiting " + formatted + " between filter writes")
}
