package main

import (
	"os"

	"github.com/OlegNassikanov/voice-agent/cmd/voice-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
