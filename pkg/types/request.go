package types

// Filter type values understood by the management API.
const (
	FilterTypeInclude   = "INCLUDE"
	FilterTypeExclude   = "EXCLUDE"
	FilterTypeLowercase = "LOWERCASE"
	FilterTypeAdvanced  = "ADVANCED"
)

// Filter field names used by the fixed-shape filters.
const (
	FieldPageHostname    = "PAGE_HOSTNAME"
	FieldCampaignSource  = "CAMPAIGN_SOURCE"
	FieldGeoOrganization = "GEO_ORGANIZATION"
	FieldGeoIPAddress    = "GEO_IP_ADDRESS"
)

// MatchTypeMatches is the regular expression match type.
const MatchTypeMatches = "MATCHES"

// Request is a validated filter creation request.
//
// Only the fields relevant to Kind are set. Requests are built through the constructors in
// the filters package, which enforce the per-kind requirements.
type Request struct {
	Kind       Kind
	Name       string
	Type       string // INCLUDE, EXCLUDE, LOWERCASE or ADVANCED.
	Field      string // Field the expression or lowercase transform applies to.
	Expression string // Expression value, empty for lowercase and advanced kinds.
	MatchType  string // Empty for custom-exclude, which leaves matching to the API default.
	// CaseSensitive applies to expression kinds.
	CaseSensitive bool
	Advanced      *AdvancedDetails
}

// AdvancedDetails holds the field extraction settings of an advanced filter.
type AdvancedDetails struct {
	FieldA            string
	ExtractA          string
	FieldARequired    bool
	FieldB            string
	ExtractB          string
	FieldBRequired    bool
	OutputToField     string
	OutputConstructor string
	CaseSensitive     bool
}
