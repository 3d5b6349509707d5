// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Tests for voice profile and context derivation
// Author:      Oleg Nassikanov
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package calibration

import (
	"testing"
	"time"
)

// testTranscripts returns a full set of recognizer outputs.
func testTranscripts() []string {
	return []string{
		"раз два три четыре пять шесть семь восемь девять десять",
		"всем привет папа здесь сегодня отличная погода",
		"где купить лопаты два миллиона рублей удалить прикрепить стереть",
		"мы купим горячие котлеты не пойдёт в принципе неплохо",
		"говорю чётко и медленно на русском языке",
		"кошка мяукает собака лает компьютер работает быстро",
	}
}

// TestDeriveContext checks the join is a plain space join with nothing
// dropped or reordered.
func TestDeriveContext(t *testing.T) {
	tests := []struct {
		name        string
		transcripts []string
		want        string
	}{
		{
			name:        "two transcripts",
			transcripts: []string{"раз два", "три четыре"},
			want:        "раз два три четыре",
		},
		{
			name:        "empty transcript keeps its slot",
			transcripts: []string{"а", "", "б"},
			want:        "а  б",
		},
		{
			name:        "single transcript",
			transcripts: []string{"привет"},
			want:        "привет",
		},
		{
			name:        "no transcripts",
			transcripts: nil,
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveContext(tt.transcripts); got != tt.want {
				t.Errorf("DeriveContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDeriveContext_Deterministic checks the same transcripts always yield
// the same context.
func TestDeriveContext_Deterministic(t *testing.T) {
	ts := testTranscripts()
	first := DeriveContext(ts)
	for i := 0; i < 10; i++ {
		if got := DeriveContext(ts); got != first {
			t.Fatalf("DeriveContext() = %q on run %d, want %q", got, i, first)
		}
	}
}

// TestNewVoiceProfile checks construction and the transcript count guard.
func TestNewVoiceProfile(t *testing.T) {
	created := time.Date(2026, 8, 19, 10, 30, 0, 0, time.UTC)

	profile, err := NewVoiceProfile(testTranscripts(), created)
	if err != nil {
		t.Fatalf("NewVoiceProfile() error = %v", err)
	}
	if len(profile.PhraseTranscripts) != PhraseCount {
		t.Errorf("len(PhraseTranscripts) = %d, want %d", len(profile.PhraseTranscripts), PhraseCount)
	}
	if want := DeriveContext(testTranscripts()); profile.ContextString != want {
		t.Errorf("ContextString = %q, want %q", profile.ContextString, want)
	}
	if !profile.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", profile.CreatedAt, created)
	}
}

// TestNewVoiceProfile_WrongCount checks that anything but a full set of
// transcripts is rejected.
func TestNewVoiceProfile_WrongCount(t *testing.T) {
	for _, n := range []int{0, 1, PhraseCount - 1, PhraseCount + 1} {
		ts := make([]string, n)
		if _, err := NewVoiceProfile(ts, time.Now()); err == nil {
			t.Errorf("NewVoiceProfile() with %d transcripts: expected error", n)
		}
	}
}

// TestNewVoiceProfile_CopiesTranscripts checks the profile is not aliased
// to the caller's slice.
func TestNewVoiceProfile_CopiesTranscripts(t *testing.T) {
	ts := testTranscripts()
	profile, err := NewVoiceProfile(ts, time.Now())
	if err != nil {
		t.Fatalf("NewVoiceProfile() error = %v", err)
	}

	ts[0] = "changed"
	if profile.PhraseTranscripts[0] == "changed" {
		t.Error("profile transcripts alias the caller's slice")
	}
}

// TestPhrases checks the calibration set is fixed and copied out.
func TestPhrases(t *testing.T) {
	ps := Phrases()
	if len(ps) != PhraseCount {
		t.Fatalf("len(Phrases()) = %d, want %d", len(ps), PhraseCount)
	}
	for i, p := range ps {
		if p == "" {
			t.Errorf("Phrases()[%d] is empty", i)
		}
	}

	ps[0] = "changed"
	if Phrases()[0] == "changed" {
		t.Error("Phrases() exposes the backing array")
	}
}
