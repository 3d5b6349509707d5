// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Fixed calibration phrase set
// Author:      Oleg Nassikanov
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package calibration

// PhraseCount is the number of calibration phrases. Stored profiles must
// carry exactly this many transcripts.
const PhraseCount = 6

// phrases are the reference sentences every speaker reads aloud. They mix
// digits, commands and everyday vocabulary so the derived context covers
// the sounds dictation runs into. Order matters: transcripts are stored in
// this order and the context string is derived from it.
var phrases = [PhraseCount]string{
	"Раз два три четыре пять. Шесть семь восемь девять десять.",
	"Всем привет папа здесь. Сегодня отличная погода.",
	"Где купить лопаты два миллиона рублей. Удалить прикрепить стереть.",
	"Мы купим горячие котлеты. Не пойдёт в принципе неплохо.",
	"Говорю чётко и медленно на русском языке.",
	"Кошка мяукает собака лает. Компьютер работает быстро.",
}

// Phrases returns the calibration phrases in presentation order.
func Phrases() []string {
	out := make([]string, PhraseCount)
	copy(out[:], phrases[:])
	return out
}
