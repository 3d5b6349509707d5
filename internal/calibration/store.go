// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Voice profile persistence
// Author:      Oleg Nassikanov
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ProfileStore reads and writes the voice profile at a fixed path.
type ProfileStore struct {
	path string
}

// NewProfileStore creates a store for the given file path.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// DefaultProfilePath returns the per-user profile location.
func DefaultProfilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot find user config dir: %w", err)
	}
	return filepath.Join(dir, "voice-agent", "profile.json"), nil
}

// Path returns the store's file path.
func (s *ProfileStore) Path() string {
	return s.path
}

// Exists reports whether a profile file is present. It says nothing about
// whether the file will load.
func (s *ProfileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// profileDocument mirrors the stored JSON. Pointer fields make a missing
// field distinguishable from an empty one.
type profileDocument struct {
	PhraseTranscripts []string   `json:"phrase_transcripts"`
	ContextString     *string    `json:"context_string"`
	CreatedAt         *time.Time `json:"created_at"`
}

// Load reads and validates the stored profile. A missing file is
// ErrNoProfile; unparsable content, a missing required field or a wrong
// transcript count is ErrCorruptProfile.
func (s *ProfileStore) Load() (*VoiceProfile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoProfile, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProfile, err)
	}
	if doc.PhraseTranscripts == nil {
		return nil, fmt.Errorf("%w: missing phrase_transcripts", ErrCorruptProfile)
	}
	if len(doc.PhraseTranscripts) != PhraseCount {
		return nil, fmt.Errorf("%w: has %d transcripts, want %d",
			ErrCorruptProfile, len(doc.PhraseTranscripts), PhraseCount)
	}
	if doc.ContextString == nil {
		return nil, fmt.Errorf("%w: missing context_string", ErrCorruptProfile)
	}

	profile := &VoiceProfile{
		PhraseTranscripts: doc.PhraseTranscripts,
		ContextString:     *doc.ContextString,
	}
	if doc.CreatedAt != nil {
		profile.CreatedAt = *doc.CreatedAt
	}
	return profile, nil
}

// Save atomically replaces the stored profile: the document is written to
// a temp file in the same directory and renamed over the target, so a
// failed write never clobbers an existing good profile.
func (s *ProfileStore) Save(p *VoiceProfile) error {
	if p == nil || len(p.PhraseTranscripts) != PhraseCount {
		return fmt.Errorf("%w: profile must carry %d transcripts", ErrSaveFailed, PhraseCount)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "profile-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}
