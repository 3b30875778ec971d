package mocks

import "sync"

// Notification is one message received by a MockNotifier.
type Notification struct {
	Message string
	Title   string
}

// MockNotifier records notifications instead of sending them.
type MockNotifier struct {
	mu       sync.Mutex
	received []Notification
	closed   bool
}

// Notify records the message.
func (n *MockNotifier) Notify(message, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.received = append(n.received, Notification{Message: message, Title: title})
}

// GetNames returns the mock service name.
func (n *MockNotifier) GetNames() []string {
	return []string{"mock"}
}

// Close marks the notifier closed.
func (n *MockNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
}

// Received returns the recorded notifications.
func (n *MockNotifier) Received() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]Notification(nil), n.received...)
}

// Closed reports whether Close was called.
func (n *MockNotifier) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.closed
}
