// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     cmd
// Description: CLI command listing audio input devices
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `Lists every audio input device PortAudio can see, marking the
default one. Pick a specific device by putting its name into the
config:

  [audio]
  device = "USB Microphone"`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	devices, err := audio.ListInputDevices()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Audio input devices"))
	fmt.Println()

	if len(devices) == 0 {
		fmt.Println(mutedStyle.Render("No input devices found."))
		return nil
	}

	for _, dev := range devices {
		mark := "  "
		if dev.IsDefault {
			mark = markStyle.Render("* ")
		}
		fmt.Printf("%s%s\n", mark, dev.Name)
		fmt.Println(mutedStyle.Render(fmt.Sprintf("    %d input channel(s), %.0f Hz",
			dev.MaxInputChannels, dev.DefaultSampleRate)))
	}

	fmt.Println()
	fmt.Println(mutedStyle.Render("* default device"))
	return nil
}
