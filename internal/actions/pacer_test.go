package actions_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/nicholas-fedor/gafilter/internal/actions"
	"github.com/nicholas-fedor/gafilter/internal/actions/mocks"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// slowClient delays each insert and records when writes start and finish.
type slowClient struct {
	types.Client

	delay time.Duration

	mu      sync.Mutex
	started []time.Time
	linked  []time.Time
}

func (c *slowClient) InsertFilter(ctx context.Context, accountID string, req types.Request) (*types.Filter, error) {
	c.mu.Lock()
	c.started = append(c.started, time.Now())
	c.mu.Unlock()

	time.Sleep(c.delay)

	return c.Client.InsertFilter(ctx, accountID, req)
}

func (c *slowClient) LinkFilter(ctx context.Context, settings types.Settings, filterID string) error {
	err := c.Client.LinkFilter(ctx, settings, filterID)

	c.mu.Lock()
	c.linked = append(c.linked, time.Now())
	c.mu.Unlock()

	return err
}

var _ = ginkgo.Describe("the pacer", func() {
	ginkgo.It("should not wait when the cooldown is disabled", func() {
		pacer := actions.NewPacer(0)
		start := time.Now()

		for range 5 {
			gomega.Expect(pacer.Wait(context.Background())).To(gomega.Succeed())
		}

		gomega.Expect(time.Since(start)).To(gomega.BeNumerically("<", 50*time.Millisecond))
	})

	ginkgo.It("should wait the full cooldown on every call", func() {
		cooldown := 40 * time.Millisecond
		pacer := actions.NewPacer(cooldown)

		for range 2 {
			start := time.Now()
			gomega.Expect(pacer.Wait(context.Background())).To(gomega.Succeed())
			gomega.Expect(time.Since(start)).To(gomega.BeNumerically(">=", cooldown))
		}
	})

	ginkgo.It("should wait the full cooldown after an idle period longer than the cooldown", func() {
		cooldown := 40 * time.Millisecond
		pacer := actions.NewPacer(cooldown)

		time.Sleep(2 * cooldown)

		start := time.Now()
		gomega.Expect(pacer.Wait(context.Background())).To(gomega.Succeed())
		gomega.Expect(time.Since(start)).To(gomega.BeNumerically(">=", cooldown))
	})

	ginkgo.It("should return when the context is cancelled", func() {
		pacer := actions.NewPacer(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gomega.Expect(pacer.Wait(ctx)).To(gomega.MatchError(context.Canceled))
	})

	ginkgo.It("should separate slow batch writes by the full cooldown", func() {
		cooldown := 40 * time.Millisecond
		client := &slowClient{
			Client: mocks.CreateMockClient(&mocks.TestData{}),
			delay:  2 * cooldown,
		}
		admin := actions.NewAdmin(client, settings, nil, actions.NewPacer(cooldown), nil)

		// 100-character values fit two to a 255-character expression.
		values := []string{
			strings.Repeat("a", 100), strings.Repeat("b", 100),
			strings.Repeat("c", 100), strings.Repeat("d", 100),
			strings.Repeat("e", 100),
		}

		start := time.Now()
		created, err := admin.CreateFiltersForList(context.Background(), values, "Slow", types.KindCampaignSourceExclude)

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(created).To(gomega.HaveLen(3))
		gomega.Expect(time.Since(start)).To(gomega.BeNumerically(">=", 3*client.delay+2*cooldown))

		gomega.Expect(client.started).To(gomega.HaveLen(3))
		gomega.Expect(client.linked).To(gomega.HaveLen(3))

		for i := 1; i < 3; i++ {
			gomega.Expect(client.started[i].Sub(client.linked[i-1])).To(gomega.BeNumerically(">=", cooldown))
		}
	})
})
