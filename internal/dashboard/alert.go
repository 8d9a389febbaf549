package dashboard

import "time"

// Threshold is the temperature (°C) above which the fire alert is shown.
const Threshold = 20.0

// RefreshInterval is the fixed time between refresh cycles.
const RefreshInterval = 5000 * time.Millisecond

// AlertState is whether the fire alert banner is currently shown.
type AlertState int

const (
	AlertHidden AlertState = iota
	AlertShown
)

// String returns a human-readable state name.
func (s AlertState) String() string {
	switch s {
	case AlertHidden:
		return "hidden"
	case AlertShown:
		return "shown"
	default:
		return "unknown"
	}
}

// AlertAction is the banner write a transition requires.
type AlertAction int

const (
	// ActionNone means the banner already matches the reading.
	ActionNone AlertAction = iota
	ActionShow
	ActionHide
)

// String returns a human-readable action name.
func (a AlertAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionShow:
		return "show"
	case ActionHide:
		return "hide"
	default:
		return "unknown"
	}
}

// Next returns the state after observing the current temperature, along with
// the banner write needed to get there. Readings on the same side of the
// threshold as the current state produce ActionNone.
func (s AlertState) Next(temperature float64) (AlertState, AlertAction) {
	switch {
	case s == AlertHidden && temperature > Threshold:
		return AlertShown, ActionShow
	case s == AlertShown && temperature <= Threshold:
		return AlertHidden, ActionHide
	default:
		return s, ActionNone
	}
}
