// Package history implements the history-store capability (spec §6): a
// sink for (line, status, t_start, t_end) after each executed line, and a
// reader for the `history` builtin's supplemented numeric "show last N"
// and `-c` clear behavior (spec.md supplement §4).
package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one recorded line execution.
type Entry struct {
	Line   string    `yaml:"line"`
	Status int       `yaml:"status"`
	Start  time.Time `yaml:"start"`
	End    time.Time `yaml:"end"`
}

// Store is a file-backed append-only history log. It is the default
// implementation of the opaque history collaborator spec §6 describes;
// callers use Record, Last, Clear and ExportYAML.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads path's existing history (if any) and returns a Store that
// appends further entries to it.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.entries = append(s.entries, Entry{Line: line})
	}
	return s, scanner.Err()
}

// Record appends one executed line to the in-memory log and the backing
// file (spec §6: "After each executed line, the shell emits (line,
// status, t_start, t_end) to the history collaborator").
func (s *Store) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, e.Line)
	return err
}

// Last returns the n most recent entries, or all of them if n <= 0
// (spec.md supplement §4: "history builtin supporting a numeric 'show
// last N' argument").
func (s *Store) Last(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// Clear erases the in-memory log and truncates the backing file
// (spec.md supplement §4: "history -c").
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return os.WriteFile(s.path, nil, 0o644)
}

// ExportYAML writes the full history to path as YAML, for `history
// --export` (spec.md's domain-stack wiring of gopkg.in/yaml.v3).
func (s *Store) ExportYAML(path string) error {
	s.mu.Lock()
	entries := append([]Entry(nil), s.entries...)
	s.mu.Unlock()

	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FormatLine renders one Entry the way `history` prints it: a 1-based
// index followed by the original line text.
func FormatLine(idx int, e Entry) string {
	return fmt.Sprintf("%5d  %s", idx, strings.TrimRight(e.Line, "\n"))
}
