// Package notifications provides the fire-and-forget notification sink used to announce filter changes.
// This file implements notifier creation from command-line configuration.
package notifications

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// NewNotifier creates and returns a new Notifier, using the command's notification flags.
//
// Without any notification URL a log-only notifier is returned.
func NewNotifier(c *cobra.Command) types.Notifier {
	flag := c.Flags()

	urls, _ := flag.GetStringArray("notification-url")
	tplString, _ := flag.GetString("notification-template")
	stdout, _ := flag.GetBool("notification-log-stdout")

	data := GetTemplateData(c)
	delay := GetDelay(c)

	clog := logrus.WithFields(logrus.Fields{
		"urls":     urls,
		"template": tplString,
		"stdout":   stdout,
		"delay":    delay,
		"hostname": data.Host,
		"tag":      data.TitleTag,
	})

	if len(urls) == 0 {
		clog.Debug("No notification URLs configured, notifications are logged only")

		return &logNotifier{data: data}
	}

	clog.Debug("Creating notifier with configuration")

	return createNotifier(urls, tplString, data, stdout, delay)
}

// GetDelay returns the delay applied before each notification is sent.
func GetDelay(c *cobra.Command) time.Duration {
	delay, _ := c.Flags().GetInt("notifications-delay")
	if delay > 0 {
		return time.Duration(delay) * time.Second
	}

	return 0
}

// GetTitle formats a notification title with an optional tag prefix.
//
// Parameters:
//   - tag: Prefix tag, rendered as "[tag] " when set.
//   - title: Base title, e.g. "Created Filter".
//
// Returns:
//   - string: Formatted title.
func GetTitle(tag, title string) string {
	titleBuilder := strings.Builder{}
	if tag != "" {
		titleBuilder.WriteRune('[')
		titleBuilder.WriteString(tag)
		titleBuilder.WriteRune(']')

		if title != "" {
			titleBuilder.WriteRune(' ')
		}
	}

	titleBuilder.WriteString(title)

	return titleBuilder.String()
}

// GetTemplateData populates the static notification data from flags and environment.
func GetTemplateData(c *cobra.Command) StaticData {
	flag := c.Flags()

	hostname, _ := flag.GetString("notifications-hostname")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	tag, _ := flag.GetString("notification-title-tag")

	return StaticData{
		Host:     hostname,
		TitleTag: tag,
	}
}

// logNotifier writes notifications to the local log only.
type logNotifier struct {
	data StaticData
}

// Notify logs the message at debug level.
func (n *logNotifier) Notify(message, title string) {
	LocalLog.WithField("title", GetTitle(n.data.TitleTag, title)).Debug(message)
}

// GetNames returns no service names.
func (n *logNotifier) GetNames() []string { return nil }

// Close does nothing.
func (n *logNotifier) Close() {}
