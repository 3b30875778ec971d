package types

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a filter request.
type Kind int

// Supported filter kinds.
const (
	KindUnknown Kind = iota
	KindHostnameInclude
	KindCampaignSourceExclude
	KindIspOrganizationExclude
	KindIPAddressExclude
	KindLowercaseNormalize
	KindCustomExclude
	KindAdvanced
)

var kindNames = map[Kind]string{
	KindHostnameInclude:        "hostname-include",
	KindCampaignSourceExclude:  "campaign-source",
	KindIspOrganizationExclude: "isp-organization",
	KindIPAddressExclude:       "ip-address",
	KindLowercaseNormalize:     "lowercase",
	KindCustomExclude:          "custom-exclude",
	KindAdvanced:               "advanced",
}

// String returns the command-line name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseKind resolves a command-line kind name, case-insensitively.
//
// Parameters:
//   - name: Kind name such as "ip-address" or "campaign-source".
//
// Returns:
//   - Kind: Matching kind.
//   - error: Non-nil wrapping ErrUnsupportedKind if the name is not recognised.
func ParseKind(name string) (Kind, error) {
	wanted := strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == wanted {
			return kind, nil
		}
	}

	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
}
