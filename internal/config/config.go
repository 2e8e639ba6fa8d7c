// Package config resolves the shell's environment-derived configuration
// once at startup (spec §6), rather than scattering os.Getenv calls
// through the call graph.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the values spec §6 says the shell consumes from its
// environment, plus the rc-file path it resolves them into.
type Config struct {
	Home          string
	NoExitOnCtrlD bool
	RCPath        string
	HistoryPath   string
}

// Load resolves Config from the OS environment. rcFlag, when non-empty,
// overrides the default rc path (cobra's --rc flag).
func Load(rcFlag string) Config {
	home, _ := os.UserHomeDir()

	cfg := Config{
		Home:          home,
		NoExitOnCtrlD: os.Getenv("NO_EXIT_ON_CTRL_D") == "1",
		RCPath:        filepath.Join(home, ".poshrc"),
		HistoryPath:   filepath.Join(home, ".posh_history"),
	}
	if rcFlag != "" {
		cfg.RCPath = rcFlag
	}
	return cfg
}
