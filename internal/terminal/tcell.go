// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     terminal
// Description: Full-screen terminal using tcell
// Author:      Oleg Nassikanov
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package terminal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const helpLine = " [space] start/stop   [esc] cancel   [q] quit "

// Screen is the tcell-backed Terminal.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	header string
	prompt string
	status string
}

// NewScreen initializes the terminal in full-screen mode.
func NewScreen(header string) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))

	s := &Screen{
		screen: screen,
		header: header,
	}
	s.render()
	return s, nil
}

// ShowPrompt replaces the main text area.
func (s *Screen) ShowPrompt(text string) {
	s.mu.Lock()
	s.prompt = text
	s.mu.Unlock()
	s.render()
}

// ShowStatus replaces the status line.
func (s *Screen) ShowStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
	s.render()
}

// NextKey blocks until a key the agent understands is pressed.
func (s *Screen) NextKey() (Key, error) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return KeyQuit, fmt.Errorf("terminal closed")
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
			s.render()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape:
				return KeyAbort, nil
			case tcell.KeyCtrlC:
				return KeyQuit, nil
			case tcell.KeyRune:
				switch ev.Rune() {
				case ' ':
					return KeyToggle, nil
				case 'q', 'Q', 'й', 'Й': // q on the Russian layout
					return KeyQuit, nil
				}
			}
		}
	}
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// render redraws the whole screen.
func (s *Screen) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	width, height := s.screen.Size()

	styleHeader := tcell.StyleDefault.Bold(true).Reverse(true)
	stylePrompt := tcell.StyleDefault.Bold(true)
	styleStatus := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleHelp := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(s.screen, 0, 0, width, styleHeader, " "+s.header)

	y := 2
	for _, line := range wrapText(s.prompt, width-4) {
		if y >= height-3 {
			break
		}
		drawText(s.screen, 2, y, width-4, stylePrompt, line)
		y++
	}

	if height >= 3 {
		drawText(s.screen, 0, height-3, width, styleStatus, " "+s.status)
	}
	if height >= 1 {
		drawText(s.screen, 0, height-1, width, styleHelp, helpLine)
	}

	s.screen.Show()
}

// drawText writes a single line, padding the remaining width.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for col < maxWidth {
		screen.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}

// wrapText splits text into lines of at most width runes, breaking on
// spaces where possible. Explicit newlines are honoured.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
