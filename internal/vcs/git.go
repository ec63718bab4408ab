// Package vcs wraps the Git CLI commands kebab-ify relies on.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library because the
//     rename semantics must match what the user gets from `git mv`.
//   - The Manager struct is stateless but exists as a receiver so the CLI
//     can hold one value for the whole run.
//   - All errors from Git commands are wrapped in model.CLIError with
//     ExitVCSError to enable proper CLI exit code handling.
package vcs

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/xyproto/files"

	"github.com/shinji-kodama/kebabify/internal/model"
)

// ErrNotRepository is returned by Status when the directory is not inside a
// Git working tree. Callers degrade to plain filesystem moves.
var ErrNotRepository = errors.New("not a git repository")

// StatusEntry is one entry of `git status --porcelain=v1 -z`.
//
// Example porcelain entries (NUL-separated in -z mode):
//
//	" M src/App.js"
//	"R  src/new.js" followed by "src/old.js"
//	"?? scratch.txt"
type StatusEntry struct {
	// X is the index (staged) status code.
	X byte

	// Y is the worktree status code.
	Y byte

	// Path is the current path of the entry.
	Path string

	// From is the original path of a rename or copy; empty otherwise.
	From string
}

// Dirty reports whether the entry blocks a run: a path modified in the index
// or in place in the worktree, or a pending rename/copy. Untracked and newly
// added files do not count.
func (e StatusEntry) Dirty() bool {
	return e.From != "" || e.X == 'M' || e.Y == 'M'
}

// Manager provides Git operations by invoking the git CLI.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Available reports whether a git binary is on PATH.
func (m *Manager) Available() bool {
	return files.WhichCached("git") != ""
}

// Status returns the porcelain status of the working tree containing path.
//
// It runs `git status --porcelain=v1 -z`, which is stable across Git versions
// and does not quote paths. ErrNotRepository is returned when path is not
// inside a Git working tree.
func (m *Manager) Status(path string) ([]StatusEntry, error) {
	output, err := runGit(path, "status", "--porcelain=v1", "-z")
	if err != nil {
		if isNotRepository(err) {
			return nil, ErrNotRepository
		}
		return nil, err
	}
	return parseStatusOutput(output), nil
}

// GetRepoRoot returns the absolute path to the top-level directory of the
// Git repository containing the given path.
func (m *Manager) GetRepoRoot(path string) (string, error) {
	output, err := runGit(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Move runs `git mv` for a path relative to root. Both src and dst are
// slash-separated, which git accepts on every platform.
func (m *Manager) Move(root, src, dst string) error {
	_, err := runGit(root, "mv", "--", src, dst)
	return err
}

// DirtyPaths returns the paths of all entries that block a run.
func DirtyPaths(entries []StatusEntry) []string {
	var dirty []string
	for _, e := range entries {
		if e.Dirty() {
			dirty = append(dirty, e.Path)
		}
	}
	return dirty
}

// IsNotTracked reports whether err is git refusing to move a path it does not
// track: an untracked or ignored file, or a directory with no tracked content.
func IsNotTracked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "not under version control") || strings.Contains(msg, "source directory is empty")
}

func isNotRepository(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not a git repository")
}

// runGit executes a git command with the given arguments in the specified directory.
//
// It captures both stdout and stderr. On success (exit code 0), it returns
// the stdout output. On failure, it returns a model.CLIError with ExitVCSError
// code, including the stderr output in the error message for debugging.
//
// The dir parameter is passed to git via the -C flag, which causes git
// to change to that directory before doing anything else. This avoids the need
// to change the process's working directory.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitVCSError, message, err)
	}

	return stdout.String(), nil
}

// parseStatusOutput parses `git status --porcelain=v1 -z` output.
//
// Entries are NUL-terminated. Each entry is "XY PATH"; for renames and
// copies (X is 'R' or 'C') the following NUL-terminated field is the
// original path.
func parseStatusOutput(output string) []StatusEntry {
	var entries []StatusEntry

	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		// The trailing NUL produces an empty last field.
		if len(field) < 4 {
			continue
		}

		entry := StatusEntry{X: field[0], Y: field[1], Path: field[3:]}
		if (entry.X == 'R' || entry.X == 'C') && i+1 < len(fields) {
			i++
			entry.From = fields[i]
		}
		entries = append(entries, entry)
	}
	return entries
}
