// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     terminal
// Description: Interactive terminal surface
// Author:      Oleg Nassikanov
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package terminal

// Key is a high-level input event. Everything the agent reacts to maps to
// one of these.
type Key int

const (
	// KeyToggle starts or stops recording (space).
	KeyToggle Key = iota

	// KeyAbort cancels the current take (escape).
	KeyAbort

	// KeyQuit leaves the program (q or ctrl-c).
	KeyQuit
)

// String returns the key name for logs.
func (k Key) String() string {
	switch k {
	case KeyToggle:
		return "toggle"
	case KeyAbort:
		return "abort"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal is the interactive surface of the agent. Implementations render
// a prompt area and a status line and deliver key presses.
type Terminal interface {
	// ShowPrompt replaces the main text area.
	ShowPrompt(text string)

	// ShowStatus replaces the status line.
	ShowStatus(text string)

	// NextKey blocks until the user presses a key the agent understands.
	NextKey() (Key, error)

	// Close restores the terminal.
	Close()
}
