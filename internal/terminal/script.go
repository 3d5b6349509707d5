// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     terminal
// Description: Canned terminal for tests
// Author:      Oleg Nassikanov
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package terminal

import (
	"fmt"
)

// Script is a canned Terminal. NextKey pops from a fixed key sequence and
// everything shown is recorded for assertions.
type Script struct {
	keys     []Key
	Prompts  []string
	Statuses []string
}

// NewScript creates a scripted terminal delivering the given keys in order.
func NewScript(keys ...Key) *Script {
	return &Script{keys: keys}
}

// ShowPrompt records the prompt.
func (s *Script) ShowPrompt(text string) {
	s.Prompts = append(s.Prompts, text)
}

// ShowStatus records the status.
func (s *Script) ShowStatus(text string) {
	s.Statuses = append(s.Statuses, text)
}

// NextKey pops the next scripted key.
func (s *Script) NextKey() (Key, error) {
	if len(s.keys) == 0 {
		return KeyQuit, fmt.Errorf("script exhausted")
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// Close does nothing.
func (s *Script) Close() {}
