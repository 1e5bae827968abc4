// Package config loads logsift's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logsift/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - window_bytes: 1048576 (1 MiB read from the end of each file)
//   - max_results: 10000 (0 disables the cap)
//   - format: "standard" ("millis" for "HH:MM:SS SSS:[Level]:" lines)
//   - utc_offset: "+08:00" (zone of timestamps written in log lines)
//   - range_end_inclusive: false (ranges are [start, end))
//   - cap_policy: "earliest" ("latest" keeps the newest matches)
//   - api_bind: 127.0.0.1:7488
//   - default_source: empty (viewer starts with an empty source field)
//
// # TOML Format
//
//	window_bytes = 2097152
//	max_results = 10000
//	format = "standard"
//	utc_offset = "+08:00"
//	range_end_inclusive = false
//	cap_policy = "earliest"
//	api_bind = "127.0.0.1:7488"
//	default_source = "~/logs/service"
//
// All fields are optional. Tilde expansion is performed on default_source.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors, and values the engine cannot use
// (unknown format or cap policy, malformed offset, negative max_results).
// Missing config files are NOT an error.
package config
