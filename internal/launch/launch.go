//go:build unix

// Package launch implements the Process Launcher (spec §4.D): forking,
// wiring pipes/redirects, setting up process groups, exec'ing, and
// handing the controlling terminal to the foreground pipeline.
package launch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/aledsdavies/posh/internal/jobtable"
	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/posherr"
	"github.com/aledsdavies/posh/internal/shell"
)

// Launcher runs Pipelines against a Shell Context.
type Launcher struct {
	Log *slog.Logger
}

// New builds a Launcher. log may be nil to discard diagnostics.
func New(log *slog.Logger) *Launcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Launcher{Log: log}
}

// Result is the outcome of running one Pipeline.
type Result struct {
	Status  int
	Stdout  string // populated only when capture was requested
	GID     int    // 0 if the pipeline was dispatched as a direct builtin
	Stopped bool
}

// Run executes pl against sh (spec §4.D). capture requests the last
// command's stdout be captured and returned in Result.Stdout instead of
// going to the real stdout, for command substitution.
func (l *Launcher) Run(ctx context.Context, sh *shell.Shell, pl pipeline.Pipeline, capture bool) (Result, error) {
	if len(pl.Commands) == 0 {
		return Result{}, posherr.Syntax("empty pipeline")
	}

	// Step 1: direct builtin dispatch, no fork, for any single
	// non-captured command (spec §4.D.1). Builtins run in-process and
	// return instantly, so there is no process group to background —
	// `cd /tmp &`/`jobs &` just run synchronously rather than forking a
	// non-existent subshell to hand a job-table entry to.
	if len(pl.Commands) == 1 && !capture {
		if fn, ok := sh.Dispatcher.Lookup(pl.Commands[0].Argv[0]); ok {
			return l.runBuiltinDirect(sh, fn, pl.Commands[0])
		}
	}

	return l.runForked(ctx, sh, pl, capture)
}

func (l *Launcher) runBuiltinDirect(sh *shell.Shell, fn shell.BuiltinFunc, cmd pipeline.Command) (Result, error) {
	stdin, stdout, stderr, closers, err := openRedirs(cmd.Redirs, os.Stdin, os.Stdout, os.Stderr)
	defer closeAll(closers)
	if err != nil {
		return Result{Status: 1}, err
	}
	status := fn(sh, cmd.Argv, stdin, stdout, stderr)
	return Result{Status: status}, nil
}

// runForked is the fork/exec path: §4.D.2-6. Each Command becomes one
// *exec.Cmd; N-1 OS pipes wire their stdio together; the first command's
// process becomes the process-group leader and every later command joins
// that group via SysProcAttr (Go's os/exec performs the fork+exec+setpgid
// atomically through clone(2), which sidesteps the classic fork-then-
// setpgid TOCTOU race the spec describes for a raw fork() implementation).
func (l *Launcher) runForked(ctx context.Context, sh *shell.Shell, pl pipeline.Pipeline, capture bool) (Result, error) {
	n := len(pl.Commands)
	cmds := make([]*exec.Cmd, n)

	readers := make([]*os.File, n-1)
	writers := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closePipes(readers[:i], writers[:i])
			return Result{}, posherr.Fatal("pipe: %v", err)
		}
		readers[i] = r
		writers[i] = w
	}

	var captureBuf bytes.Buffer
	var captureWriter *os.File
	var captureReader *os.File
	if capture {
		var err error
		captureReader, captureWriter, err = os.Pipe()
		if err != nil {
			closePipes(readers, writers)
			return Result{}, posherr.Fatal("capture pipe: %v", err)
		}
	}

	var leaderPID int
	var extraClosers []io.Closer

	for i, c := range pl.Commands {
		var stdin *os.File = os.Stdin
		if i > 0 {
			stdin = readers[i-1]
		}
		var stdout *os.File = os.Stdout
		switch {
		case i < n-1:
			stdout = writers[i]
		case capture:
			stdout = captureWriter
		}

		rIn, rOut, rErr, closers, err := openRedirs(c.Redirs, stdin, stdout, os.Stderr)
		extraClosers = append(extraClosers, closers...)
		if err != nil {
			killGroup(leaderPID)
			closePipes(readers, writers)
			closeAll(extraClosers)
			return Result{Status: 1}, err
		}

		cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
		cmd.Stdin = rIn
		cmd.Stdout = rOut
		cmd.Stderr = rErr
		cmd.Env = os.Environ()

		if i == 0 {
			cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		} else {
			cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: leaderPID}
		}

		if err := cmd.Start(); err != nil {
			killGroup(leaderPID)
			closePipes(readers, writers)
			closeAll(extraClosers)
			return Result{Status: 127}, &posherr.Error{Kind: posherr.KindExec, Detail: fmt.Sprintf("%s: %v", c.Argv[0], err), Status: 127}
		}
		if i == 0 {
			leaderPID = cmd.Process.Pid
			// Defensive: also set it from the parent side, race-safe to
			// call from both (spec §4.D.3).
			_ = syscall.Setpgid(leaderPID, leaderPID)
		} else {
			_ = syscall.Setpgid(cmd.Process.Pid, leaderPID)
		}
		cmds[i] = cmd
		sh.Jobs.InsertJob(leaderPID, cmd.Process.Pid, cmdString(pl), jobtable.Running, pl.Background)
	}

	// Parent closes its copies of every pipe fd (spec §4.D.4).
	closePipes(readers, writers)
	if capture {
		_ = captureWriter.Close()
	}
	closeAll(extraClosers)

	if pl.Background {
		l.Log.Debug("backgrounded pipeline", "gid", leaderPID, "cmd", cmdString(pl))
		return Result{GID: leaderPID}, nil
	}

	var captureDone chan struct{}
	if capture {
		captureDone = make(chan struct{})
		go func() {
			io.Copy(&captureBuf, captureReader)
			captureReader.Close()
			close(captureDone)
		}()
	}

	status, stopped, err := l.waitForeground(sh, leaderPID, cmds)
	if capture {
		<-captureDone
	}
	if err != nil {
		return Result{Status: status, GID: leaderPID}, err
	}
	return Result{Status: status, Stdout: captureBuf.String(), GID: leaderPID, Stopped: stopped}, nil
}

// killGroup terminates every member of a partially-launched pipeline's
// process group after a later command in the same pipeline fails to
// start, so earlier commands don't run on detached from any wait loop or
// Job Table entry (spec §4.D.4-5). The Reaper's next sweep picks up and
// clears the resulting exits; gid 0 means nothing has started yet.
func killGroup(gid int) {
	if gid == 0 {
		return
	}
	_ = syscall.Kill(-gid, syscall.SIGKILL)
}

// cmdString renders pl for display in `jobs` output and debug logs. It is
// rebuilt from the expanded argv of each Command, not taken from the
// original source text.
func cmdString(pl pipeline.Pipeline) string {
	parts := make([]string, len(pl.Commands))
	for i, c := range pl.Commands {
		parts[i] = strings.Join(c.Argv, " ")
	}
	joined := strings.Join(parts, " | ")
	if pl.Background {
		joined += " &"
	}
	return joined
}
