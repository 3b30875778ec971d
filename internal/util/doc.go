// Package util provides small helpers shared by the gafilter commands and actions.
// It includes comma-separated list handling for profile settings and human-readable durations.
//
// Key components:
//   - SplitCSV: Splits a comma-separated setting into trimmed, non-empty tokens.
//   - MergeCSV: Appends tokens missing from a comma-separated setting.
//   - SliceSubtract: Removes elements of one slice from another.
//   - FormatDuration: Renders a duration as "1 minute, 5 seconds".
//
// Usage example:
//
//	merged, added := util.MergeCSV(profile.ExcludeQueryParameters, "utm_source,fbclid")
//	logrus.Infof("Cooldown between writes: %s", util.FormatDuration(cooldown))
package util
