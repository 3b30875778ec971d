package types

// Filter is a filter record held by the management API.
type Filter struct {
	ID         string
	AccountID  string
	Name       string
	Type       string
	Field      string
	Expression string
}

// Profile is the subset of a reporting view gafilter reads and writes.
type Profile struct {
	ID                     string
	AccountID              string
	PropertyID             string
	Name                   string
	ExcludeQueryParameters string
}

// Settings identifies the analytics account, property and view a run operates on.
type Settings struct {
	AccountID  string
	PropertyID string
	ProfileID  string
	Site       string // Hostname used by the hostname include filter.
}
