package notifications

import (
	"errors"
	"sync"
	"text/template"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/spf13/cobra"

	shoutrrrTypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/nicholas-fedor/gafilter/internal/flags"
	"github.com/nicholas-fedor/gafilter/pkg/notifications/templates"
)

// sentMessage captures one routed notification.
type sentMessage struct {
	body  string
	title string
}

// recordingRouter records messages instead of delivering them.
type recordingRouter struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
	gate chan struct{}
}

func (r *recordingRouter) Send(message string, params *shoutrrrTypes.Params) []error {
	if r.gate != nil {
		<-r.gate
	}

	title, _ := params.Title()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, sentMessage{body: message, title: title})

	if r.fail {
		return []error{errors.New("service unavailable")}
	}

	return []error{nil}
}

func (r *recordingRouter) messages() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]sentMessage(nil), r.sent...)
}

func newCommand(args ...string) *cobra.Command {
	command := &cobra.Command{Use: "test"}
	flags.RegisterNotificationFlags(command)
	gomega.Expect(command.ParseFlags(args)).To(gomega.Succeed())

	return command
}

func startNotifier(router *recordingRouter, tplString string, data StaticData) *shoutrrrTypeNotifier {
	tpl, err := getShoutrrrTemplate(tplString)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	notifier := newShoutrrrNotifier([]string{"logger://"}, router, tpl, data, 0)
	go sendNotifications(notifier)

	return notifier
}

var _ = ginkgo.Describe("notifications", func() {
	ginkgo.Describe("the notifier factory", func() {
		ginkgo.When("no notification URL is configured", func() {
			ginkgo.It("should return a log-only notifier", func() {
				notifier := NewNotifier(newCommand())

				gomega.Expect(notifier.GetNames()).To(gomega.BeEmpty())
				gomega.Expect(func() { notifier.Notify("Spam 01", "Created Filter") }).NotTo(gomega.Panic())
				notifier.Close()
			})
		})

		ginkgo.When("a logger URL is configured", func() {
			ginkgo.It("should report the service name", func() {
				notifier := NewNotifier(newCommand("--notification-url", "logger://"))
				defer notifier.Close()

				gomega.Expect(notifier.GetNames()).To(gomega.Equal([]string{"logger"}))
			})
		})

		ginkgo.When("the hostname is overridden", func() {
			ginkgo.It("should use it in the template data", func() {
				data := GetTemplateData(newCommand("--notifications-hostname", "test.host"))
				gomega.Expect(data.Host).To(gomega.Equal("test.host"))
			})
		})

		ginkgo.When("a delay is defined", func() {
			ginkgo.It("should convert it to seconds", func() {
				gomega.Expect(GetDelay(newCommand("--notifications-delay", "5"))).
					To(gomega.Equal(5 * time.Second))
				gomega.Expect(GetDelay(newCommand())).To(gomega.Equal(time.Duration(0)))
			})
		})
	})

	ginkgo.Describe("GetTitle", func() {
		ginkgo.It("should prefix the tag", func() {
			gomega.Expect(GetTitle("PROD", "Created Filter")).To(gomega.Equal("[PROD] Created Filter"))
		})
		ginkgo.It("should return the bare title without a tag", func() {
			gomega.Expect(GetTitle("", "Removed Filter")).To(gomega.Equal("Removed Filter"))
		})
		ginkgo.It("should not leave a trailing space for an empty title", func() {
			gomega.Expect(GetTitle("PROD", "")).To(gomega.Equal("[PROD]"))
		})
	})

	ginkgo.Describe("the shoutrrr notifier", func() {
		ginkgo.It("should deliver messages in order with their titles", func() {
			router := &recordingRouter{}
			notifier := startNotifier(router, "", StaticData{})

			notifier.Notify("Spam 01", "Created Filter")
			notifier.Notify("Spam 02", "Created Filter")
			notifier.Close()

			gomega.Expect(router.messages()).To(gomega.Equal([]sentMessage{
				{body: "Spam 01", title: "Created Filter"},
				{body: "Spam 02", title: "Created Filter"},
			}))
		})

		ginkgo.It("should fall back to the title when the message is empty", func() {
			router := &recordingRouter{}
			notifier := startNotifier(router, "", StaticData{TitleTag: "GA"})

			notifier.Notify("", "Added Exclude Query Params")
			notifier.Close()

			gomega.Expect(router.messages()).To(gomega.ConsistOf(
				sentMessage{body: "[GA] Added Exclude Query Params", title: "[GA] Added Exclude Query Params"},
			))
		})

		ginkgo.It("should render common templates", func() {
			router := &recordingRouter{}
			notifier := startNotifier(router, "detailed", StaticData{Host: "build-01"})

			notifier.Notify("Office IPs 01", "Created Filter")
			notifier.Close()

			gomega.Expect(router.messages()[0].body).
				To(gomega.Equal("Created Filter: Office IPs 01 (build-01)"))
		})

		ginkgo.It("should keep going when delivery fails", func() {
			router := &recordingRouter{fail: true}
			notifier := startNotifier(router, "", StaticData{})

			notifier.Notify("one", "t")
			notifier.Notify("two", "t")
			notifier.Close()

			gomega.Expect(router.messages()).To(gomega.HaveLen(2))
		})

		ginkgo.It("should drop messages instead of blocking when the queue is full", func() {
			router := &recordingRouter{gate: make(chan struct{})}
			notifier := startNotifier(router, "", StaticData{})

			done := make(chan struct{})
			go func() {
				for range queueSize + 10 {
					notifier.Notify("value", "t")
				}
				close(done)
			}()

			gomega.Eventually(done).Should(gomega.BeClosed())
			close(router.gate)
			notifier.Close()

			gomega.Expect(len(router.messages())).To(gomega.BeNumerically("<=", queueSize+1))
		})

		ginkgo.It("should ignore notifications after close", func() {
			router := &recordingRouter{}
			notifier := startNotifier(router, "", StaticData{})
			notifier.Close()

			gomega.Expect(func() { notifier.Notify("late", "t") }).NotTo(gomega.Panic())
			gomega.Expect(func() { notifier.Close() }).NotTo(gomega.Panic())
			gomega.Expect(router.messages()).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("getShoutrrrTemplate", func() {
		ginkgo.It("should reject an invalid template", func() {
			_, err := getShoutrrrTemplate("{{ .Message ")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should expose the template functions", func() {
			tpl := template.Must(template.New("").Funcs(templates.Funcs).Parse(`{{Title .}}`))
			gomega.Expect(tpl).NotTo(gomega.BeNil())

			router := &recordingRouter{}
			notifier := startNotifier(router, "upper", StaticData{})
			notifier.Notify("x", "created filter")
			notifier.Close()

			gomega.Expect(router.messages()[0].body).To(gomega.Equal("CREATED FILTER: x"))
		})
	})
})
