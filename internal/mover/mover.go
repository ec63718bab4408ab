package mover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/kebabify/internal/model"
	"github.com/shinji-kodama/kebabify/internal/vcs"
)

// Mover moves one root-relative, slash-separated path to another.
type Mover interface {
	// Move performs a single rename.
	Move(src, dst string) error

	// Command renders the equivalent shell command, used for dry runs.
	Command(op model.RenameOp) string

	// Mode reports which mechanism the mover uses.
	Mode() model.VCSMode
}

// ApplyError identifies the operation that stopped a run.
type ApplyError struct {
	// Index is the zero-based position of the failed operation.
	Index int

	// Op is the failed operation.
	Op model.RenameOp

	// Err is the underlying failure.
	Err error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("operation %d (%s) failed: %v", e.Index+1, e.Op, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// ErrDestinationExists is returned when an operation would overwrite an
// existing path.
var ErrDestinationExists = errors.New("destination already exists")

// Apply runs ops through m in order. Each operation completes before the
// next starts. progress, if non-nil, is called after every successful move.
//
// Before each move the destination is checked: moving onto an existing path
// would silently overwrite a file with os.Rename, or nest a directory inside
// another with git mv.
func Apply(root string, ops []model.RenameOp, m Mover, progress func(i int, op model.RenameOp)) error {
	for i, op := range ops {
		dst := filepath.Join(root, filepath.FromSlash(op.Destination))
		if _, err := os.Lstat(dst); err == nil {
			return &ApplyError{Index: i, Op: op, Err: ErrDestinationExists}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return &ApplyError{Index: i, Op: op, Err: err}
		}

		if err := m.Move(op.Source, op.Destination); err != nil {
			return &ApplyError{Index: i, Op: op, Err: err}
		}
		if progress != nil {
			progress(i, op)
		}
	}
	return nil
}

// Script renders ops as a shell script, one command per line.
func Script(ops []model.RenameOp, m Mover) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -e\n")
	for _, op := range ops {
		b.WriteString(m.Command(op))
		b.WriteByte('\n')
	}
	return b.String()
}

// FSMover renames paths directly on the filesystem.
type FSMover struct {
	root string
}

// NewFSMover creates an FSMover operating under root.
func NewFSMover(root string) *FSMover {
	return &FSMover{root: root}
}

// Move renames src to dst with os.Rename.
func (m *FSMover) Move(src, dst string) error {
	return os.Rename(m.abs(src), m.abs(dst))
}

// Command returns "mv 'src' 'dst'".
func (m *FSMover) Command(op model.RenameOp) string {
	return fmt.Sprintf("mv %s %s", shellQuote(op.Source), shellQuote(op.Destination))
}

// Mode returns model.VCSNone.
func (m *FSMover) Mode() model.VCSMode {
	return model.VCSNone
}

func (m *FSMover) abs(p string) string {
	return filepath.Join(m.root, filepath.FromSlash(p))
}

// GitMover renames paths with `git mv`, so the index records the renames.
// Paths git does not track (untracked or ignored files, directories with no
// tracked content) are renamed on the filesystem instead.
type GitMover struct {
	root     string
	git      *vcs.Manager
	fallback *FSMover
}

// NewGitMover creates a GitMover operating under root.
func NewGitMover(root string, git *vcs.Manager) *GitMover {
	return &GitMover{root: root, git: git, fallback: NewFSMover(root)}
}

// Move runs `git mv src dst`, falling back to a plain rename for untracked
// sources.
func (m *GitMover) Move(src, dst string) error {
	err := m.git.Move(m.root, src, dst)
	if vcs.IsNotTracked(err) {
		return m.fallback.Move(src, dst)
	}
	return err
}

// Command returns "git mv 'src' 'dst'".
func (m *GitMover) Command(op model.RenameOp) string {
	return fmt.Sprintf("git mv %s %s", shellQuote(op.Source), shellQuote(op.Destination))
}

// Mode returns model.VCSGit.
func (m *GitMover) Mode() model.VCSMode {
	return model.VCSGit
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
