package filters

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// MatchName selects filters whose name contains fragment, keeping listing order.
//
// An empty fragment matches every filter.
//
// Parameters:
//   - filters: Filters as listed by the API.
//   - fragment: Substring to look for in filter names.
//
// Returns:
//   - []*types.Filter: Matching filters.
func MatchName(filters []*types.Filter, fragment string) []*types.Filter {
	matches := make([]*types.Filter, 0, len(filters))

	for _, filter := range filters {
		if filter == nil {
			continue
		}

		if strings.Contains(filter.Name, fragment) {
			logrus.WithFields(logrus.Fields{
				"filter":   filter.Name,
				"fragment": fragment,
			}).Trace("Matched filter by name fragment")

			matches = append(matches, filter)
		}
	}

	return matches
}

// FindByName returns the first filter with exactly the given name, or nil.
func FindByName(filters []*types.Filter, name string) *types.Filter {
	for _, filter := range filters {
		if filter != nil && filter.Name == name {
			return filter
		}
	}

	return nil
}
