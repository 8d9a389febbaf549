package ui

// Status marks printed by the CLI commands.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolPending = "○"
	SymbolAlert   = "▲"
)
