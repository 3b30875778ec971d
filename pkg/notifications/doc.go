// Package notifications provides the fire-and-forget notification sink used to announce filter changes.
// Messages are delivered through Shoutrrr, so any service it supports (Slack, Teams, Gotify, email, ...)
// can be targeted with a URL.
//
// Key components:
//   - Notifier Creation: Configures the sink from flags (notifier.go).
//   - Shoutrrr Integration: Queues and sends messages from a single goroutine (shoutrrr.go).
//   - Templates: Message templates and template functions (common_templates.go, templates/).
//
// Usage example:
//
//	notifier := notifications.NewNotifier(cmd)
//	defer notifier.Close()
//	notifier.Notify("Spam Referrers 01", "Created Filter")
//
// Notify never blocks the caller and never fails; delivery errors are logged locally.
package notifications
