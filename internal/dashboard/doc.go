// Package dashboard implements the sensor dashboard: a refresh cycle that
// fetches temperature and humidity series, two line charts, two readouts and
// a fire alert banner.
//
// # Architecture
//
// Controller owns all state and is independent of the terminal:
//
//	Fetch  - GET /api/data through a sensors.Source (any goroutine)
//	Apply  - install readings: readouts, charts, alert transition (one goroutine)
//	Refresh - Fetch then Apply, logging failures
//
// Two schedulers drive it. Model is a Bubble Tea program (Model-Update-View)
// for interactive terminals; RunPlain prints lines for pipes and journals.
//
// # Refresh Cycle
//
//  1. A cycle runs immediately at startup
//  2. tickMsg fires every RefreshInterval (5s)
//  3. If the previous cycle is still in flight the tick is skipped
//  4. readingsMsg or fetchErrMsg ends the cycle
//
// Failed cycles leave charts, readouts and alert state untouched. There is no
// retry or backoff; the next tick simply tries again.
//
// # Alert
//
// AlertState is a two-state machine. Hidden becomes Shown when the latest
// temperature exceeds Threshold (20°C); Shown becomes Hidden when it drops to
// Threshold or below. Any other reading is ActionNone, so the banner is only
// written on a crossing.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now (skipped if a cycle is in flight)
//	?           - Toggle full help
package dashboard
