// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     cmd
// Description: CLI command listing recent dictations
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OlegNassikanov/voice-agent/internal/config"
	"github.com/OlegNassikanov/voice-agent/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent dictations",
	Long: `Shows the latest dictation transcriptions, newest first.

Examples:
  voice-agent history
  voice-agent history --limit 5`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	path := cfg.History.Path
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	store, err := history.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	entries, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Dictation history (%d total)", total)))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println(mutedStyle.Render("Nothing dictated yet."))
		return nil
	}

	for _, e := range entries {
		meta := fmt.Sprintf("%s · %s · %.1fs",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Engine, e.DurationSecs)
		if e.Calibrated {
			meta += " · calibrated"
		}
		fmt.Println(mutedStyle.Render(meta))
		fmt.Println(e.Text)
		fmt.Println()
	}

	return nil
}
