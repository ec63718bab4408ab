// Package model defines the domain types and value objects for the
// kebab-ify CLI.
//
// This package contains pure data structures with no external dependencies.
// The rename plan (RenameMap + RenameOp sequence) is built once by the
// planner, consumed once by the mover, and then only used for reporting.
// RunResult collects everything the report and the console output need.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
