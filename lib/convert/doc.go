// Package convert maps native store replies onto canonical values.
//
// The store answers with dozens of reply shapes (see package reply). Consumers
// of a query result should not need to know any of them, so every shape is
// converted into one of three canonical forms:
//
//   - scalars: string, int64, float64, bool or nil
//   - *FieldMap: an ordered map from a fixed lower-kebab-case field name to a
//     canonical value
//   - []any: a sequence of canonical values
//
// Converters:
//
//   - Scalar converters turn a shape into a single scalar (StreamEntryID).
//   - Structured converters turn a shape into a *FieldMap. Nested shapes are
//     converted by calling the nested converter, e.g. GeoRadius embeds the
//     result of GeoCoordinate. A nil nested value converts to nil.
//   - Paged wraps any inner converter and turns a reply.ScanResult into
//     {cursor, results}. New page types reuse Paged with an existing inner
//     converter instead of adding a new algorithm.
//
// Registry:
//
//	The Registry is a fixed table from Key to converter. Every Key has exactly
//	one converter; adding a reply shape means adding one converter function,
//	one Key and one table entry. The dispatcher picks the Key from the command
//	it issued and calls Registry.Convert with the native reply.
//
// Thread Safety:
//
//	All converters are pure functions and the Registry is immutable after
//	NewRegistry returns. Converting structurally equal replies always yields
//	deeply equal canonical values.
package convert
