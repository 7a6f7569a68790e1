// Package reply defines the native reply shapes produced by the store client.
//
// These types mirror what the store returns for the commands whose replies are
// not plain strings, integers or lists: sorted set tuples, geo search hits,
// stream entries and stream metadata, ACL records, and paged scan results.
// They are plain values without behaviour (apart from StreamEntryID parsing and
// ordering) and are converted into canonical values by package convert.
package reply
