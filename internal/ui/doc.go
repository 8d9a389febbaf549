// Package ui provides the line-oriented terminal output used by the
// sensordash subcommands (init, check). The full-screen dashboard lives in
// package dashboard.
//
// Colors are ANSI codes so they follow the user's terminal theme. Call
// DisableColor for --no-color.
//
//	s := ui.NewSpinner(os.Stdout, "Fetching http://localhost:5000/api/data", true)
//	s.Start()
//	// ... do work ...
//	s.Success("21°C, 42%") // or s.Fail(reason)
package ui
