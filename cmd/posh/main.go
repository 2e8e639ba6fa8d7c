package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aledsdavies/posh/internal/builtin"
	"github.com/aledsdavies/posh/internal/config"
	"github.com/aledsdavies/posh/internal/editor"
	"github.com/aledsdavies/posh/internal/history"
	"github.com/aledsdavies/posh/internal/launch"
	"github.com/aledsdavies/posh/internal/logging"
	"github.com/aledsdavies/posh/internal/rc"
	"github.com/aledsdavies/posh/internal/reaper"
	"github.com/aledsdavies/posh/internal/runline"
	"github.com/aledsdavies/posh/internal/shell"
)

func main() {
	var (
		cFlag   string
		rcFlag  string
		debug   bool
		noColor bool
	)

	root := &cobra.Command{
		Use:   "posh",
		Short: "A POSIX-style interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cFlag, rcFlag, debug, noColor)
		},
	}

	root.Flags().StringVarP(&cFlag, "command", "c", "", "execute STRING as one line, then exit")
	root.Flags().StringVar(&rcFlag, "rc", "", "path to the rc file (default $HOME/.poshrc)")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug diagnostics on stderr")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}
}

// run implements spec §6's three invocation modes and propagates the
// process exit code the way §6 requires (last pipeline's status; 127 on
// exec failure; 128+n on signal termination — all of which are already
// folded into internal/launch's reported status by the time run sees it).
func run(cFlag, rcFlag string, debug, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	cfg := config.Load(rcFlag)
	log := logging.NewLogger(os.Stderr, debug)

	sh := shell.New()
	sh.ShellPGID = syscall.Getpgrp()
	if term.IsTerminal(int(os.Stdin.Fd())) {
		sh.TTYFd = int(os.Stdin.Fd())
	}

	installSignalDiscipline()

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: history: %v\n", err)
		hist = nil
	}

	runner := runline.New(launch.New(log), reaper.New(sh.Jobs, os.Stdout), hist, log, os.Stdout, os.Stderr)

	registry := &builtin.Registry{Jobs: runner.Launcher, History: hist, Runner: runner}
	registry.RegisterAll(sh.Dispatcher)

	_ = rc.Load(cfg.RCPath, func(line string) { runner.RunLine(sh, line) })

	if cFlag != "" {
		status := runner.RunLine(sh, cFlag)
		return exitWithStatus(status)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runNonInteractive(runner, sh)
	}

	return runInteractive(runner, sh, cfg)
}

func runNonInteractive(runner *runline.Runner, sh *shell.Shell) error {
	ed := editor.NewBasic(os.Stdin, os.Stderr, false)
	status := 0
	for {
		line, outcome, err := ed.ReadLine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			break
		}
		if outcome == editor.EOF {
			break
		}
		status = runner.RunLine(sh, line)
		if code, ok := sh.ExitRequested(); ok {
			status = code
			break
		}
	}
	return exitWithStatus(status)
}

func runInteractive(runner *runline.Runner, sh *shell.Shell, cfg config.Config) error {
	ed := editor.NewBasicFromFd()
	status := 0
	for {
		ed.SetPrompt(prompt(sh))
		line, outcome, err := ed.ReadLine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			break
		}
		if outcome == editor.EOF {
			if cfg.NoExitOnCtrlD {
				continue
			}
			break
		}
		if line == "" {
			continue
		}
		status = runner.RunLine(sh, line)
		if code, ok := sh.ExitRequested(); ok {
			status = code
			break
		}
	}
	return exitWithStatus(status)
}

func prompt(sh *shell.Shell) string {
	dir, err := os.Getwd()
	if err != nil {
		dir = "?"
	}
	return color.New(color.FgCyan).Sprintf("%s", dir) + "$ "
}

// installSignalDiscipline implements spec §5's signal discipline: the
// shell installs (never ignores) handlers for the job-control signals so
// that execve resets each child's disposition to default automatically,
// and relies on the Reaper's non-blocking polling rather than an async
// SIGCHLD handler.
func installSignalDiscipline() {
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, syscall.SIGTSTP, syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		for range ch {
			// Swallowed: the shell process itself is never stopped or
			// interrupted by these; only its foreground child group is.
		}
	}()
}

func exitWithStatus(status int) error {
	if status == 0 {
		return nil
	}
	os.Exit(status)
	return nil
}
