// Package model defines the domain types for the kebab-ify CLI.
//
// All paths stored in these types are relative to the processed root
// directory and use forward slashes, regardless of the host OS. Conversion
// to OS-specific paths happens only where files are actually touched.
package model

import (
	"fmt"
	"strings"
)

// TempSuffix is appended to a destination path to form the intermediate
// name of a two-step rename.
const TempSuffix = ".temp-rename"

// VCSMode describes how renames are carried out on disk.
type VCSMode string

const (
	// VCSGit moves paths with `git mv` so the index follows the renames.
	VCSGit VCSMode = "git"

	// VCSNone moves paths with plain filesystem renames. Used when the root
	// is not inside a Git repository, git is not installed, or --no-git is set.
	VCSNone VCSMode = "none"
)

// String returns the string representation of VCSMode.
func (m VCSMode) String() string {
	return string(m)
}

// RenameOp is a single move of one path to another, both relative to the root.
//
// A rename that is prone to case-insensitive collisions is represented by
// two consecutive RenameOps through a TempSuffix path; see IsTempStep.
type RenameOp struct {
	// Source is the path as it exists when this operation runs, i.e. after
	// every earlier operation in the sequence has been applied.
	Source string `json:"source" yaml:"source"`

	// Destination is the path the source is moved to.
	Destination string `json:"destination" yaml:"destination"`

	// IsDir reports whether the operation moves a directory.
	IsDir bool `json:"isDir" yaml:"isDir"`
}

// IsTempStep reports whether either side of the operation is an
// intermediate ".temp-rename" path.
func (op RenameOp) IsTempStep() bool {
	return strings.HasSuffix(op.Source, TempSuffix) || strings.HasSuffix(op.Destination, TempSuffix)
}

// String returns "source → destination".
func (op RenameOp) String() string {
	return fmt.Sprintf("%s → %s", op.Source, op.Destination)
}

// RenameEntry is one recorded directory rename.
type RenameEntry struct {
	Original string `json:"original" yaml:"original"`
	Renamed  string `json:"renamed" yaml:"renamed"`
}

// RenameMap records directory renames in insertion order.
//
// Each original path appears at most once: the first recorded value wins
// and later Set calls for the same key are ignored.
type RenameMap struct {
	entries []RenameEntry
	index   map[string]int
}

// NewRenameMap creates an empty RenameMap.
func NewRenameMap() *RenameMap {
	return &RenameMap{index: make(map[string]int)}
}

// Set records original → renamed unless original was already recorded.
// It reports whether the entry was added.
func (m *RenameMap) Set(original, renamed string) bool {
	if _, exists := m.index[original]; exists {
		return false
	}
	m.index[original] = len(m.entries)
	m.entries = append(m.entries, RenameEntry{Original: original, Renamed: renamed})
	return true
}

// Get returns the recorded rename target for original.
func (m *RenameMap) Get(original string) (string, bool) {
	i, ok := m.index[original]
	if !ok {
		return "", false
	}
	return m.entries[i].Renamed, true
}

// Has reports whether original has been recorded.
func (m *RenameMap) Has(original string) bool {
	_, ok := m.index[original]
	return ok
}

// Len returns the number of recorded entries.
func (m *RenameMap) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *RenameMap) Entries() []RenameEntry {
	out := make([]RenameEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Plan is the output of the planning pass: the directory rename map and the
// ordered operations that realize it. The order of Operations is significant
// and must be preserved exactly when applied.
type Plan struct {
	Renames    *RenameMap
	Operations []RenameOp
}

// IsEmpty reports whether the plan contains no operations.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Operations) == 0
}

// RunResult aggregates everything a single run produced. It feeds both the
// report file and the console output.
type RunResult struct {
	// Root is the processed directory as given on the command line.
	Root string `json:"root" yaml:"root"`

	// VCS is the mechanism used for moves.
	VCS VCSMode `json:"vcs" yaml:"vcs"`

	// DryRun is true when no mutation was performed.
	DryRun bool `json:"dryRun" yaml:"dryRun"`

	// Renames are the recorded directory renames, in planning order.
	Renames []RenameEntry `json:"renames" yaml:"renames"`

	// Operations are the moves that were (or would be) applied.
	Operations []RenameOp `json:"operations" yaml:"operations"`

	// ModifiedFiles are the files whose references were rewritten in pass 2.
	ModifiedFiles []string `json:"modifiedFiles" yaml:"modifiedFiles"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to tell why a run stopped.
type ExitCode int

const (
	// ExitSuccess indicates the run completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitTargetNotFound indicates the root directory does not exist.
	ExitTargetNotFound ExitCode = 2

	// ExitDirtyTree indicates the Git working tree has modified files.
	ExitDirtyTree ExitCode = 3

	// ExitVCSError indicates the Git status check failed for a reason other
	// than "not a git repository".
	ExitVCSError ExitCode = 4

	// ExitNothingToDo indicates the tree is already fully kebab-case.
	ExitNothingToDo ExitCode = 5

	// ExitCollision indicates two source files would end up at the same path.
	ExitCollision ExitCode = 6

	// ExitMoveFailed indicates a move operation failed mid-run. Moves applied
	// before the failing one are not rolled back.
	ExitMoveFailed ExitCode = 7

	// ExitConfigError indicates the configuration file could not be loaded.
	ExitConfigError ExitCode = 8
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
