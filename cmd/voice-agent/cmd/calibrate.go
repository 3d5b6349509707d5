// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     cmd
// Description: CLI command for standalone voice calibration
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OlegNassikanov/voice-agent/internal/agent"
	"github.com/OlegNassikanov/voice-agent/internal/calibration"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Record the calibration phrases and save the voice profile",
	Long: `Runs the voice calibration on its own: six fixed phrases are read
aloud one by one, each take is transcribed, and the collected
transcripts are saved as the voice profile.

A failed or cancelled phrase is simply offered again. Quitting
abandons the calibration and leaves any existing profile untouched.

Examples:
  voice-agent calibrate
  voice-agent calibrate --verbose`,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	app, err := agent.New(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := terminal.NewScreen("voice-agent calibration")
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer term.Close()

	go func() {
		<-ctx.Done()
		term.Close()
	}()

	replacing := app.HasProfile()
	err = app.Calibrate(ctx, term)
	term.Close()

	if errors.Is(err, calibration.ErrAborted) {
		fmt.Println("Calibration abandoned, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if replacing {
		fmt.Printf("Voice profile replaced at %s\n", app.ProfilePath())
	} else {
		fmt.Printf("Voice profile saved to %s\n", app.ProfilePath())
	}
	return nil
}
