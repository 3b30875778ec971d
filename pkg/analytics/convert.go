package analytics

import (
	gaapi "google.golang.org/api/analytics/v3"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

const (
	filterKind           = "analytics#filter"
	filterExpressionKind = "analytics#filterExpression"
)

// toAPIFilter maps a request onto the API filter shape for its kind.
func toAPIFilter(accountID string, req types.Request) *gaapi.Filter {
	filter := &gaapi.Filter{
		AccountId: accountID,
		Name:      req.Name,
		Type:      req.Type,
		Kind:      filterKind,
	}

	switch req.Kind {
	case types.KindHostnameInclude:
		filter.IncludeDetails = expressionDetails(req)
	case types.KindCampaignSourceExclude,
		types.KindIspOrganizationExclude,
		types.KindIPAddressExclude:
		filter.ExcludeDetails = expressionDetails(req)
	case types.KindCustomExclude:
		filter.ExcludeDetails = &gaapi.FilterExpression{
			Field:           req.Field,
			ExpressionValue: req.Expression,
		}
	case types.KindLowercaseNormalize:
		filter.LowercaseDetails = &gaapi.FilterLowercaseDetails{Field: req.Field}
	case types.KindAdvanced:
		if adv := req.Advanced; adv != nil {
			filter.AdvancedDetails = &gaapi.FilterAdvancedDetails{
				FieldA:            adv.FieldA,
				ExtractA:          adv.ExtractA,
				FieldARequired:    adv.FieldARequired,
				FieldB:            adv.FieldB,
				ExtractB:          adv.ExtractB,
				FieldBRequired:    adv.FieldBRequired,
				OutputToField:     adv.OutputToField,
				OutputConstructor: adv.OutputConstructor,
				CaseSensitive:     adv.CaseSensitive,
			}
		}
	case types.KindUnknown:
	}

	return filter
}

func expressionDetails(req types.Request) *gaapi.FilterExpression {
	return &gaapi.FilterExpression{
		Field:           req.Field,
		ExpressionValue: req.Expression,
		MatchType:       req.MatchType,
		CaseSensitive:   req.CaseSensitive,
		Kind:            filterExpressionKind,
	}
}

// fromAPIFilter flattens an API filter into the record gafilter works with.
func fromAPIFilter(filter *gaapi.Filter) *types.Filter {
	if filter == nil {
		return nil
	}

	record := &types.Filter{
		ID:        filter.Id,
		AccountID: filter.AccountId,
		Name:      filter.Name,
		Type:      filter.Type,
	}

	switch {
	case filter.IncludeDetails != nil:
		record.Field = filter.IncludeDetails.Field
		record.Expression = filter.IncludeDetails.ExpressionValue
	case filter.ExcludeDetails != nil:
		record.Field = filter.ExcludeDetails.Field
		record.Expression = filter.ExcludeDetails.ExpressionValue
	case filter.LowercaseDetails != nil:
		record.Field = filter.LowercaseDetails.Field
	case filter.AdvancedDetails != nil:
		record.Field = filter.AdvancedDetails.OutputToField
	}

	return record
}
