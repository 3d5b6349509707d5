// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     agent
// Description: Startup calibration decision
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

package agent

// NeedsCalibration is the startup decision: calibrate when explicitly
// forced, or when loading the stored profile failed for any reason. A
// corrupt profile is treated exactly like an absent one.
func NeedsCalibration(force bool, loadErr error) bool {
	return force || loadErr != nil
}
