// Package logtail provides bounded reads of large log files.
//
// # Overview
//
// Log files handed to logsift can grow to several gigabytes. This package
// never loads a whole file: it reads only the final window of bytes and
// exposes the result as a lazy line stream.
//
// # Core Functionality
//
//  1. OpenTail: open a file and stream lines from its last window bytes
//  2. SelectLatest: pick the newest .log/.txt file in a directory
//
// # Reading Log Files
//
// OpenTail computes the start offset as
//
//	offset = size > window ? size - window : 0
//
// seeks there, and limits reading to the bytes that existed at open time.
// The stream is finite even if the file keeps growing.
//
// Example usage:
//
//	tail, err := logtail.OpenTail("/var/log/app/service.log", logtail.DefaultWindow)
//	if err != nil {
//		return err
//	}
//	defer tail.Close()
//	for tail.Scan() {
//		fmt.Println(tail.Text())
//	}
//	if err := tail.Err(); err != nil {
//		return err
//	}
//
// # Partial Lines
//
// When the offset lands in the middle of a line, the first line yielded is a
// fragment. It is not an error. Callers that filter on timestamps or levels
// drop it naturally because it will not start with a timestamp.
//
// # Best-Effort Decoding
//
// Lines that are not valid UTF-8 are skipped silently. A window that starts
// in the middle of a multi-byte rune therefore loses at most its first
// fragment. Trailing "\r" is stripped so CRLF files read the same as LF
// files.
//
// # Directory Selection
//
// SelectLatest lists a directory without recursion and considers regular
// files (or symlinks to them) whose extension is exactly ".log" or ".txt".
// The file with the latest modification time wins; on ties the entry listed
// first is kept. An empty match set yields ErrNoLogFiles.
//
// # Error Handling
//
// Errors are wrapped with the failing step ("open log file", "stat log file",
// "seek log file", "read log file", "read log dir") so callers can show them
// directly. Every error path closes the file before returning.
//
// # Design Rationale
//
// This package is intentionally small:
//   - No filtering (that is logfilter's job)
//   - No following or file watching
//   - No state shared between calls
package logtail
