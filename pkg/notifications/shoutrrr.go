// Package notifications provides the fire-and-forget notification sink used to announce filter changes.
// This file implements Shoutrrr delivery with templating and a bounded send queue.
package notifications

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/sirupsen/logrus"

	shoutrrrTypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/nicholas-fedor/gafilter/pkg/notifications/templates"
)

// LocalLog is a logrus entry for messages that must stay local to the process.
var LocalLog = logrus.WithField("notify", "no")

// queueSize bounds the number of messages waiting for delivery.
const queueSize = 32

// router defines the interface for sending Shoutrrr notifications.
// It abstracts the underlying service implementation.
type router interface {
	Send(message string, params *shoutrrrTypes.Params) []error
}

// message is one queued notification.
type message struct {
	body  string
	title string
}

// shoutrrrTypeNotifier implements types.Notifier on top of Shoutrrr.
type shoutrrrTypeNotifier struct {
	Urls     []string
	Router   router
	template *template.Template
	messages chan message
	done     chan bool
	data     StaticData
	delay    time.Duration

	mu     sync.Mutex
	closed bool
}

// GetScheme extracts the scheme part of a Shoutrrr URL.
// It returns "invalid" if no scheme is found.
func GetScheme(url string) string {
	schemeEnd := strings.Index(url, ":")
	if schemeEnd <= 0 {
		return "invalid"
	}

	return url[:schemeEnd]
}

// GetNames returns a list of notification service names derived from URLs.
func (n *shoutrrrTypeNotifier) GetNames() []string {
	names := make([]string, len(n.Urls))
	for i, u := range n.Urls {
		names[i] = GetScheme(u)
	}

	return names
}

// createNotifier initializes a Shoutrrr notifier and starts its sending goroutine.
//
// The template string may name a common template or contain a text/template body; an invalid
// template falls back to the default one.
func createNotifier(
	urls []string,
	tplString string,
	data StaticData,
	stdout bool,
	delay time.Duration,
) *shoutrrrTypeNotifier {
	tpl, err := getShoutrrrTemplate(tplString)
	if err != nil {
		logrus.Errorf(
			"Could not use configured notification template: %s. Using default template",
			err,
		)

		tpl = template.Must(template.New("").Funcs(templates.Funcs).Parse(commonTemplates[`default`]))
	}

	var logger shoutrrrTypes.StdLogger
	if stdout {
		logger = log.New(os.Stdout, ``, 0)
	} else {
		logger = log.New(logrus.StandardLogger().WriterLevel(logrus.TraceLevel), "Shoutrrr: ", 0)
	}

	router, err := shoutrrr.NewSender(logger, urls...)
	if err != nil {
		logrus.Fatalf("Failed to initialize Shoutrrr notifications: %s\n", err.Error())
	}

	notifier := newShoutrrrNotifier(urls, router, tpl, data, delay)

	go sendNotifications(notifier)

	return notifier
}

func newShoutrrrNotifier(
	urls []string,
	router router,
	tpl *template.Template,
	data StaticData,
	delay time.Duration,
) *shoutrrrTypeNotifier {
	return &shoutrrrTypeNotifier{
		Urls:     urls,
		Router:   router,
		template: tpl,
		messages: make(chan message, queueSize),
		done:     make(chan bool),
		data:     data,
		delay:    delay,
	}
}

// sendNotifications delivers queued messages via the router until the queue is closed.
func sendNotifications(notifier *shoutrrrTypeNotifier) {
	for msg := range notifier.messages {
		time.Sleep(notifier.delay)

		params := &shoutrrrTypes.Params{}
		if msg.title != "" {
			params.SetTitle(msg.title)
		}

		errs := notifier.Router.Send(msg.body, params)

		for i, err := range errs {
			if err != nil {
				LocalLog.WithFields(logrus.Fields{
					"service": GetScheme(notifier.Urls[i]),
					"index":   i,
				}).WithError(err).Error("Failed to send shoutrrr notification")
			}
		}
	}

	notifier.done <- true
}

// buildMessage renders a notification body from the configured template.
func (n *shoutrrrTypeNotifier) buildMessage(data Data) (string, error) {
	var body bytes.Buffer

	if err := n.template.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute notification template: %w", err)
	}

	return body.String(), nil
}

// Notify queues a message without blocking.
//
// Messages arriving after Close, or while the queue is full, are dropped and logged locally.
func (n *shoutrrrTypeNotifier) Notify(msg, title string) {
	title = GetTitle(n.data.TitleTag, title)

	body, err := n.buildMessage(Data{StaticData: n.data, Title: title, Message: msg})
	if err != nil {
		LocalLog.WithError(err).Error("Notification template error")

		return
	}

	if body == "" {
		body = title
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		LocalLog.WithField("title", title).Debug("Notifier closed, dropping notification")

		return
	}

	select {
	case n.messages <- message{body: body, title: title}:
	default:
		LocalLog.WithField("title", title).Warn("Notification queue full, dropping notification")
	}
}

// Close prevents further messages from being queued and waits until all queued messages are sent.
func (n *shoutrrrTypeNotifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()

		return
	}

	n.closed = true
	close(n.messages)
	n.mu.Unlock()

	LocalLog.Debug("Waiting for the notification goroutine to finish")

	<-n.done
}

// getShoutrrrTemplate retrieves or parses the template used for notification bodies.
func getShoutrrrTemplate(tplString string) (*template.Template, error) {
	tplBase := template.New("").Funcs(templates.Funcs)

	if builtin, found := commonTemplates[tplString]; found {
		logrus.WithField(`template`, tplString).Debug(`Using common template`)
		tplString = builtin
	}

	if tplString == "" {
		return template.Must(tplBase.Parse(commonTemplates[`default`])), nil
	}

	tpl, err := tplBase.Parse(tplString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template string: %w", err)
	}

	return tpl, nil
}
