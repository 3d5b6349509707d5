package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OlegNassikanov/voice-agent/internal/agent"
	"github.com/OlegNassikanov/voice-agent/internal/config"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

var (
	cfgFile        string
	verbose        bool
	forceCalibrate bool
)

var rootCmd = &cobra.Command{
	Use:   "voice-agent",
	Short: "Personalized voice dictation for the terminal",
	Long: `voice-agent turns speech into text with a recognizer primed on your
own voice. On first start it walks you through a short calibration:
six fixed phrases are read aloud, transcribed and stored as a voice
profile whose text primes every later transcription.

Keys:
  space  start / stop a take
  esc    cancel the current take
  q      quit (also й on the Russian layout)`,
	RunE: runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: <user-config-dir>/voice-agent/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose logging")
	rootCmd.Flags().BoolVarP(&forceCalibrate, "calibrate", "c", false,
		"recalibrate the voice profile before dictating")
}

// setup loads the configuration and opens the log sink.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	return cfg, log, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
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

	term, err := terminal.NewScreen("voice-agent")
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer term.Close()

	// A signal must unblock the key wait; closing the screen does that.
	go func() {
		<-ctx.Done()
		term.Close()
	}()

	lines, err := app.Run(ctx, term, forceCalibrate)
	term.Close()

	// The alternate screen is gone, so repeat the dictated text where the
	// shell can keep it.
	for _, line := range lines {
		fmt.Println(line)
	}
	return err
}
