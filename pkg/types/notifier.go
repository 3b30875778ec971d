package types

// Notifier defines the notification sink used to announce remote changes.
type Notifier interface {
	Notify(message, title string) // Queue a message; never blocks, never fails.
	GetNames() []string           // Service names.
	Close()                       // Stop and flush notifications.
}
