// Package logfilter decides which log lines a query keeps.
//
// # Line Format
//
// Lines are free text that begin with a fixed-width timestamp and carry a
// bracketed severity token somewhere after it:
//
//	2024-01-01 10:05:00 [Error] failure X
//	2024-01-01 10:05:00 250:[Error]:failure X
//
// The first form is FormatStandard, the second FormatMillis. Neither facet is
// stored; Format.ExtractTimestamp and Format.ExtractLevel re-scan the line on
// every call.
//
// # Predicates
//
// Criteria.Keep applies three predicates with short-circuit AND:
//
//  1. Text: literal, case-sensitive substring. Empty disables it.
//  2. Level: the first level token must equal Criteria.Level. LevelAll (or
//     empty) disables it. Lines without a token are dropped.
//  3. Range: active only when both Start and End are set. Lines without a
//     parseable timestamp are dropped. The interval is [Start, End) unless
//     EndInclusive is set.
//
// Timestamps in lines carry no offset. They are read as wall time in
// Criteria.Zone, which defaults to ChinaStandardTime (UTC+8). Bounds are
// parsed once per query with ParseBound and normalized into the same zone.
package logfilter
