package filters

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

var lower = cases.Lower(language.Und)

// NewHostnameInclude builds an include filter matching the site hostname.
//
// The site is lowercased and every "." is escaped so the expression matches the literal hostname.
//
// Parameters:
//   - name: Filter name.
//   - site: Site hostname, e.g. "www.Example.com".
//
// Returns:
//   - types.Request: Validated request.
//   - error: Non-nil wrapping types.ErrInvalidRequest or types.ErrMissingSetting.
func NewHostnameInclude(name, site string) (types.Request, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return types.Request{}, fmt.Errorf("%w: site", types.ErrMissingSetting)
	}

	req := types.Request{
		Kind:       types.KindHostnameInclude,
		Name:       name,
		Type:       types.FilterTypeInclude,
		Field:      types.FieldPageHostname,
		Expression: strings.ReplaceAll(lower.String(site), ".", `\.`),
		MatchType:  types.MatchTypeMatches,
	}

	if err := validateExpression(req); err != nil {
		return types.Request{}, err
	}

	return req, nil
}

// NewCampaignSourceExclude builds an exclude filter on the campaign source.
func NewCampaignSourceExclude(name, expression string) (types.Request, error) {
	return newFieldExclude(types.KindCampaignSourceExclude, types.FieldCampaignSource, name, expression)
}

// NewIspOrganizationExclude builds an exclude filter on the ISP organization.
func NewIspOrganizationExclude(name, expression string) (types.Request, error) {
	return newFieldExclude(types.KindIspOrganizationExclude, types.FieldGeoOrganization, name, expression)
}

// NewIPAddressExclude builds an exclude filter on the visitor IP address.
func NewIPAddressExclude(name, expression string) (types.Request, error) {
	return newFieldExclude(types.KindIPAddressExclude, types.FieldGeoIPAddress, name, expression)
}

// NewLowercase builds a filter that lowercases a field.
//
// Parameters:
//   - name: Filter name.
//   - field: Field to lowercase, e.g. "PAGE_REQUEST_URI".
//
// Returns:
//   - types.Request: Validated request.
//   - error: Non-nil wrapping types.ErrInvalidRequest when name or field is empty.
func NewLowercase(name, field string) (types.Request, error) {
	req := types.Request{
		Kind:  types.KindLowercaseNormalize,
		Name:  name,
		Type:  types.FilterTypeLowercase,
		Field: field,
	}

	if err := validateName(req.Name); err != nil {
		return types.Request{}, err
	}

	if req.Field == "" {
		return types.Request{}, fmt.Errorf("%w: lowercase filter %q needs a field", types.ErrInvalidRequest, name)
	}

	return req, nil
}

// NewCustomExclude builds an exclude filter on an arbitrary field.
//
// Unlike the fixed-shape excludes it leaves match type and case sensitivity to the API defaults.
func NewCustomExclude(name, field, expression string) (types.Request, error) {
	req := types.Request{
		Kind:       types.KindCustomExclude,
		Name:       name,
		Type:       types.FilterTypeExclude,
		Field:      field,
		Expression: expression,
	}

	if req.Field == "" {
		return types.Request{}, fmt.Errorf("%w: custom exclude filter %q needs a field", types.ErrInvalidRequest, name)
	}

	if err := validateExpression(req); err != nil {
		return types.Request{}, err
	}

	return req, nil
}

// NewAdvanced builds an advanced extraction filter.
//
// Parameters:
//   - name: Filter name.
//   - details: Extraction settings; FieldA and OutputToField are required.
//
// Returns:
//   - types.Request: Validated request.
//   - error: Non-nil wrapping types.ErrInvalidRequest when a required setting is empty.
func NewAdvanced(name string, details types.AdvancedDetails) (types.Request, error) {
	if err := validateName(name); err != nil {
		return types.Request{}, err
	}

	if details.FieldA == "" || details.OutputToField == "" {
		return types.Request{}, fmt.Errorf(
			"%w: advanced filter %q needs field A and an output field",
			types.ErrInvalidRequest,
			name,
		)
	}

	return types.Request{
		Kind:     types.KindAdvanced,
		Name:     name,
		Type:     types.FilterTypeAdvanced,
		Advanced: &details,
	}, nil
}

func newFieldExclude(kind types.Kind, field, name, expression string) (types.Request, error) {
	req := types.Request{
		Kind:       kind,
		Name:       name,
		Type:       types.FilterTypeExclude,
		Field:      field,
		Expression: expression,
		MatchType:  types.MatchTypeMatches,
	}

	if err := validateExpression(req); err != nil {
		return types.Request{}, err
	}

	return req, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: filter name is empty", types.ErrInvalidRequest)
	}

	if n := utf8.RuneCountInString(name); n > MaxExpressionLength {
		return fmt.Errorf("%w: filter name is %d characters, limit is %d", types.ErrInvalidRequest, n, MaxExpressionLength)
	}

	return nil
}

func validateExpression(req types.Request) error {
	if err := validateName(req.Name); err != nil {
		return err
	}

	if req.Expression == "" {
		return fmt.Errorf("%w: filter %q has an empty expression", types.ErrInvalidRequest, req.Name)
	}

	if n := utf8.RuneCountInString(req.Expression); n > MaxExpressionLength {
		return fmt.Errorf(
			"%w: filter %q expression is %d characters, limit is %d",
			types.ErrInvalidRequest,
			req.Name,
			n,
			MaxExpressionLength,
		)
	}

	return nil
}
