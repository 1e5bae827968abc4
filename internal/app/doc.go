// Package app is the composition root for the logsift viewer.
//
// Run loads the config and viewer preferences, chooses where queries run and
// hands control to the Bubble Tea program in package ui:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read ~/.config/logsift/config.toml
//	       ├─────> prefs.Load()         Theme and line-number preference
//	       ├─────> newFetcher()
//	       │        ├─ local:  NewEngine() wrapped in EngineFetcher
//	       │        └─ remote: api.NewClient() + waitForServer()
//	       └─────> ui.Run()             Blocks until the user quits
//
// With a remote server the health check is retried with exponential backoff
// (three attempts) so the viewer never opens against an address that is not
// serving. Local queries log nowhere because the viewer owns the terminal.
//
// NewEngine is shared with the command line entry points so every surface
// builds its engine from the same config.
package app
