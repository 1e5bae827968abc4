// Package query runs bounded, filtered reads of log files.
//
// An Engine combines the pieces from logtail and logfilter:
//
//  1. Parse the start and end bounds once (bad input fails here, before I/O)
//  2. Resolve a folder source to its newest .log/.txt file
//  3. Stream the tail window of the file
//  4. Keep lines that pass logfilter.Criteria, in file order
//  5. Stop at the result cap, or keep the latest matches with CapLatest
//
// FetchLogs and FetchFolderLogs expose the five-string call surface used by
// the CLI, the HTTP API and the viewer. Failures are *Error values whose Kind
// is KindBadInput, KindIO or KindNotFound; malformed individual lines never
// fail a query.
package query
