package actions_test

import (
	"context"
	"errors"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nicholas-fedor/gafilter/internal/actions"
	"github.com/nicholas-fedor/gafilter/internal/actions/mocks"
	"github.com/nicholas-fedor/gafilter/pkg/metrics"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

var errPaceInterrupted = errors.New("pace interrupted")

// recordingPacer logs each wait into the mock call history so ordering can be asserted.
type recordingPacer struct {
	data *mocks.TestData
	err  error
}

func (p *recordingPacer) Wait(context.Context) error {
	p.data.Calls = append(p.data.Calls, mocks.Call{Op: "pace"})

	return p.err
}

// counterValue reads a kind-labelled counter from the metrics registry.
func counterValue(m *metrics.Metrics, name string, kind types.Kind) float64 {
	families, err := m.Gatherer().Gather()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "kind" && label.GetValue() == kind.String() {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}

var settings = types.Settings{
	AccountID:  "1234",
	PropertyID: "UA-1234-1",
	ProfileID:  "5678",
	Site:       "WWW.Example.com",
}

var _ = ginkgo.Describe("the admin service", func() {
	var (
		ctx      context.Context
		data     *mocks.TestData
		notifier *mocks.MockNotifier
		pacer    *recordingPacer
		m        *metrics.Metrics
		admin    *actions.Admin
	)

	ginkgo.BeforeEach(func() {
		var err error

		ctx = context.Background()
		data = &mocks.TestData{}
		notifier = &mocks.MockNotifier{}
		pacer = &recordingPacer{data: data}
		m, err = metrics.NewWithRegistry(prometheus.NewRegistry())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		admin = actions.NewAdmin(mocks.CreateMockClient(data), settings, notifier, pacer, m)
	})

	ginkgo.Describe("CreateFilter", func() {
		ginkgo.It("should insert, then link, then notify", func() {
			filter, err := admin.CreateExcludeFilter(ctx, types.KindIPAddressExclude, "Office", "10\\.0\\.0\\.1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(filter.Name).To(gomega.Equal("Office"))
			gomega.Expect(data.Ops()).To(gomega.Equal([]string{"insert", "link"}))
			gomega.Expect(data.Calls[1].FilterID).To(gomega.Equal(filter.ID))
			gomega.Expect(notifier.Received()).To(gomega.Equal([]mocks.Notification{
				{Message: "Office", Title: "Created Filter"},
			}))
			gomega.Expect(counterValue(m, "gafilter_filters_created_total", types.KindIPAddressExclude)).To(gomega.Equal(1.0))
		})

		ginkgo.It("should report a link failure as a remote error on link", func() {
			data.FailOps = []string{"link"}

			_, err := admin.CreateLowercaseFilter(ctx, "Lowercase Source", types.FieldCampaignSource)

			var remoteErr *types.RemoteAPIError
			gomega.Expect(errors.As(err, &remoteErr)).To(gomega.BeTrue())
			gomega.Expect(remoteErr.Op).To(gomega.Equal("link"))
			gomega.Expect(errors.Is(err, mocks.ErrMockFailure)).To(gomega.BeTrue())
			gomega.Expect(notifier.Received()).To(gomega.BeEmpty())
		})

		ginkgo.It("should report an insert failure without linking", func() {
			data.FailOps = []string{"insert"}

			_, err := admin.CreateCustomExcludeFilter(ctx, "Bots", "USER_DEFINED_VALUE", "bot")

			var remoteErr *types.RemoteAPIError
			gomega.Expect(errors.As(err, &remoteErr)).To(gomega.BeTrue())
			gomega.Expect(remoteErr.Op).To(gomega.Equal("insert"))
			gomega.Expect(data.Count("link")).To(gomega.Equal(0))
		})
	})

	ginkgo.Describe("CreateHostnameFilter", func() {
		ginkgo.It("should include the lowercased site with every dot escaped", func() {
			_, err := admin.CreateHostnameFilter(ctx, "Hostname")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(data.Calls[0].Request.Expression).To(gomega.Equal(`www\.example\.com`))
			gomega.Expect(data.Calls[0].Request.Type).To(gomega.Equal(types.FilterTypeInclude))
		})
	})

	ginkgo.Describe("CreateAdvancedFilter", func() {
		ginkgo.It("should reject details without an output field before any remote call", func() {
			_, err := admin.CreateAdvancedFilter(ctx, "Full URL", types.AdvancedDetails{FieldA: "PAGE_HOSTNAME"})
			gomega.Expect(errors.Is(err, types.ErrInvalidRequest)).To(gomega.BeTrue())
			gomega.Expect(data.Calls).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("CreateFiltersForList", func() {
		long := func(r string) string { return strings.Repeat(r, 130) }

		ginkgo.It("should create one filter per batch and pace between them", func() {
			created, err := admin.CreateFiltersForList(
				ctx,
				[]string{long("a"), long("b"), long("c")},
				"Spam",
				types.KindCampaignSourceExclude,
			)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created).To(gomega.HaveLen(3))
			gomega.Expect(created[0].Name).To(gomega.Equal("Spam 01"))
			gomega.Expect(created[2].Name).To(gomega.Equal("Spam 03"))
			gomega.Expect(data.Ops()).To(gomega.Equal([]string{
				"insert", "link", "pace", "insert", "link", "pace", "insert", "link",
			}))
			gomega.Expect(counterValue(m, "gafilter_batches_total", types.KindCampaignSourceExclude)).To(gomega.Equal(3.0))
		})

		ginkgo.It("should stop at the first failed batch and keep earlier filters", func() {
			data.FailInsertAt = 2

			created, err := admin.CreateFiltersForList(
				ctx,
				[]string{long("a"), long("b"), long("c")},
				"Spam",
				types.KindIspOrganizationExclude,
			)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(errors.Is(err, mocks.ErrMockFailure)).To(gomega.BeTrue())
			gomega.Expect(created).To(gomega.HaveLen(1))
			gomega.Expect(data.Count("insert")).To(gomega.Equal(2))
			gomega.Expect(data.Filters).To(gomega.HaveLen(1))
			gomega.Expect(data.Filters[0].Name).To(gomega.Equal("Spam 01"))
		})

		ginkgo.It("should stop when the cooldown is interrupted", func() {
			pacer.err = errPaceInterrupted

			created, err := admin.CreateFiltersForList(
				ctx,
				[]string{long("a"), long("b")},
				"Spam",
				types.KindIPAddressExclude,
			)
			gomega.Expect(errors.Is(err, errPaceInterrupted)).To(gomega.BeTrue())
			gomega.Expect(created).To(gomega.HaveLen(1))
		})

		ginkgo.It("should combine short values into one filter", func() {
			created, err := admin.CreateFiltersForList(
				ctx,
				[]string{"10.0.0.1", "", "10.0.0.2"},
				"Office",
				types.KindIPAddressExclude,
			)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created).To(gomega.HaveLen(1))
			gomega.Expect(created[0].Expression).To(gomega.Equal("10.0.0.1|10.0.0.2"))
			gomega.Expect(data.Calls[0].Request.Field).To(gomega.Equal(types.FieldGeoIPAddress))
		})

		ginkgo.It("should reject an oversized value before calling the API for it", func() {
			created, err := admin.CreateFiltersForList(
				ctx,
				[]string{"short", strings.Repeat("x", 300)},
				"Spam",
				types.KindCampaignSourceExclude,
			)
			gomega.Expect(errors.Is(err, types.ErrInvalidRequest)).To(gomega.BeTrue())
			gomega.Expect(created).To(gomega.HaveLen(1))
			gomega.Expect(data.Count("insert")).To(gomega.Equal(1))
		})

		ginkgo.DescribeTable("should reject kinds without batch support before any remote call",
			func(kind types.Kind) {
				created, err := admin.CreateFiltersForList(ctx, []string{"a", "b"}, "Name", kind)
				gomega.Expect(created).To(gomega.BeEmpty())

				var configErr *types.ConfigurationError
				gomega.Expect(errors.As(err, &configErr)).To(gomega.BeTrue())
				gomega.Expect(configErr.Kind).To(gomega.Equal(kind))
				gomega.Expect(errors.Is(err, types.ErrUnsupportedKind)).To(gomega.BeTrue())
				gomega.Expect(data.Calls).To(gomega.BeEmpty())
			},
			ginkgo.Entry("hostname include", types.KindHostnameInclude),
			ginkgo.Entry("lowercase", types.KindLowercaseNormalize),
			ginkgo.Entry("custom exclude", types.KindCustomExclude),
			ginkgo.Entry("advanced", types.KindAdvanced),
		)
	})

	ginkgo.Describe("DeleteFilters", func() {
		ginkgo.BeforeEach(func() {
			data.Filters = []*types.Filter{
				{ID: "1", Name: "Spam 01"},
				{ID: "2", Name: "Hostname"},
				{ID: "3", Name: "Spam 02"},
			}
		})

		ginkgo.It("should remove only matching filters and pace between removals", func() {
			removed, err := admin.DeleteFilters(ctx, "Spam")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(removed).To(gomega.HaveLen(2))
			gomega.Expect(data.Ops()).To(gomega.Equal([]string{"list", "remove", "pace", "remove"}))
			gomega.Expect(data.Filters).To(gomega.HaveLen(1))
			gomega.Expect(data.Filters[0].Name).To(gomega.Equal("Hostname"))
			gomega.Expect(notifier.Received()).To(gomega.Equal([]mocks.Notification{
				{Message: "Spam 01", Title: "Removed Filter"},
				{Message: "Spam 02", Title: "Removed Filter"},
			}))
		})

		ginkgo.It("should stop at the first failed removal", func() {
			data.FailOps = []string{"remove"}

			removed, err := admin.DeleteFilters(ctx, "Spam")
			gomega.Expect(removed).To(gomega.BeEmpty())

			var remoteErr *types.RemoteAPIError
			gomega.Expect(errors.As(err, &remoteErr)).To(gomega.BeTrue())
			gomega.Expect(remoteErr.Op).To(gomega.Equal("remove"))
			gomega.Expect(data.Count("remove")).To(gomega.Equal(1))
		})

		ginkgo.It("should do nothing when no filter matches", func() {
			removed, err := admin.DeleteFilters(ctx, "Missing")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(removed).To(gomega.BeEmpty())
			gomega.Expect(data.Ops()).To(gomega.Equal([]string{"list"}))
		})
	})

	ginkgo.Describe("GetFilter and GetMatchingFilters", func() {
		ginkgo.BeforeEach(func() {
			data.Filters = []*types.Filter{{ID: "1", Name: "Spam 01"}, {ID: "2", Name: "Spam"}}
		})

		ginkgo.It("should find by exact name", func() {
			filter, err := admin.GetFilter(ctx, "Spam")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(filter.ID).To(gomega.Equal("2"))
		})

		ginkgo.It("should return nil without error for an absent name", func() {
			filter, err := admin.GetFilter(ctx, "Nope")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(filter).To(gomega.BeNil())
		})

		ginkgo.It("should match by fragment in listing order", func() {
			matches, err := admin.GetMatchingFilters(ctx, "Spam")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(matches).To(gomega.HaveLen(2))
			gomega.Expect(matches[0].ID).To(gomega.Equal("1"))
		})

		ginkgo.It("should surface list failures as remote errors", func() {
			data.FailOps = []string{"list"}

			_, err := admin.GetMatchingFilters(ctx, "Spam")

			var remoteErr *types.RemoteAPIError
			gomega.Expect(errors.As(err, &remoteErr)).To(gomega.BeTrue())
			gomega.Expect(remoteErr.Op).To(gomega.Equal("list"))
		})
	})

	ginkgo.Describe("AddExcludeQueryParameters", func() {
		ginkgo.BeforeEach(func() {
			data.Profile = &types.Profile{ID: "5678", ExcludeQueryParameters: "utm_source"}
		})

		ginkgo.It("should merge new parameters and notify", func() {
			added, err := admin.AddExcludeQueryParameters(ctx, "utm_source,fbclid")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(added).To(gomega.Equal([]string{"fbclid"}))
			gomega.Expect(data.Profile.ExcludeQueryParameters).To(gomega.Equal("utm_source,fbclid"))
			gomega.Expect(notifier.Received()).To(gomega.Equal([]mocks.Notification{
				{Message: "", Title: "Added Exclude Query Params"},
			}))
		})

		ginkgo.It("should skip the update when nothing is new", func() {
			added, err := admin.AddExcludeQueryParameters(ctx, "utm_source")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(added).To(gomega.BeEmpty())
			gomega.Expect(data.Count("update-profile")).To(gomega.Equal(0))
			gomega.Expect(notifier.Received()).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject an empty parameter list", func() {
			_, err := admin.AddExcludeQueryParameters(ctx, " , ")
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(data.Calls).To(gomega.BeEmpty())
		})

		ginkgo.It("should surface update failures", func() {
			data.FailOps = []string{"update-profile"}

			_, err := admin.AddExcludeQueryParameters(ctx, "gclid")

			var remoteErr *types.RemoteAPIError
			gomega.Expect(errors.As(err, &remoteErr)).To(gomega.BeTrue())
			gomega.Expect(remoteErr.Op).To(gomega.Equal("update-profile"))
		})
	})

	ginkgo.It("should work without a notifier or pacer", func() {
		bare := actions.NewAdmin(mocks.CreateMockClient(data), settings, nil, nil, nil)

		created, err := bare.CreateFiltersForList(
			ctx,
			[]string{strings.Repeat("a", 200), strings.Repeat("b", 200)},
			"Spam",
			types.KindCampaignSourceExclude,
		)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(created).To(gomega.HaveLen(2))
		gomega.Expect(data.Count("pace")).To(gomega.Equal(0))
	})
})
