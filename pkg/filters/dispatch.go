package filters

import (
	"slices"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// Constructor builds a request for one batch.
type Constructor func(name, expression string) (types.Request, error)

// batchConstructors lists the kinds that can be created from a value list.
var batchConstructors = map[types.Kind]Constructor{
	types.KindCampaignSourceExclude:  NewCampaignSourceExclude,
	types.KindIPAddressExclude:       NewIPAddressExclude,
	types.KindIspOrganizationExclude: NewIspOrganizationExclude,
}

// Dispatch returns the batch constructor for a kind.
//
// Parameters:
//   - kind: Filter kind requested for batch creation.
//
// Returns:
//   - Constructor: Request constructor for the kind.
//   - error: *types.ConfigurationError wrapping types.ErrUnsupportedKind for kinds without one.
func Dispatch(kind types.Kind) (Constructor, error) {
	constructor, ok := batchConstructors[kind]
	if !ok {
		return nil, &types.ConfigurationError{Kind: kind, Err: types.ErrUnsupportedKind}
	}

	return constructor, nil
}

// BatchKinds returns the kinds Dispatch accepts, in declaration order.
func BatchKinds() []types.Kind {
	kinds := make([]types.Kind, 0, len(batchConstructors))
	for kind := range batchConstructors {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}
