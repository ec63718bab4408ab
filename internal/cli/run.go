// Package cli — run.go implements the kebab-ify run itself.
//
// A run is a strictly sequential pipeline; each stage finishes before the
// next one starts:
//  1. Load the optional config file and merge it with the flags
//  2. Check the root exists and the Git working tree is clean
//  3. Walk the tree and plan every rename (no mutation yet)
//  4. Apply the moves one at a time, through `git mv` when possible
//  5. Walk the renamed tree and rewrite import/require references
//  6. Write the report file and print a summary
//
// With --dry-run the run stops after step 3 and prints the moves as a
// shell script instead.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/kebabify/internal/config"
	"github.com/shinji-kodama/kebabify/internal/model"
	"github.com/shinji-kodama/kebabify/internal/mover"
	"github.com/shinji-kodama/kebabify/internal/planner"
	"github.com/shinji-kodama/kebabify/internal/report"
	"github.com/shinji-kodama/kebabify/internal/rewrite"
	"github.com/shinji-kodama/kebabify/internal/scan"
	"github.com/shinji-kodama/kebabify/internal/vcs"
)

// defaultRoot is processed when neither an argument nor the config file
// names a directory.
const defaultRoot = "src"

// runFlags holds the flag values for the root command.
type runFlags struct {
	// dryRun prints the planned moves as a shell script and changes nothing.
	dryRun bool

	// noGit forces plain filesystem moves even inside a repository.
	noGit bool

	// relativeOnly restricts reference rewriting to relative paths.
	relativeOnly bool

	// kebabAncestors kebab-cases ancestor directories instead of only
	// lowercasing them.
	kebabAncestors bool

	// skip adds doublestar globs to the built-in skip list.
	skip []string

	// report is the report file path.
	report string

	// reportFormat is "text", "yaml" or "json".
	reportFormat string

	// config is an explicit config file path.
	config string
}

func registerRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Print the planned moves as a shell script without changing anything")
	cmd.Flags().BoolVar(&flags.noGit, "no-git", false, "Rename with plain filesystem moves instead of git mv")
	cmd.Flags().BoolVar(&flags.relativeOnly, "relative-only", false, "Only rewrite references starting with ./, ../ or /")
	cmd.Flags().BoolVar(&flags.kebabAncestors, "kebab-ancestors", false, "Kebab-case ancestor directories instead of only lowercasing them")
	cmd.Flags().StringArrayVar(&flags.skip, "skip", nil, "Glob of files or directories to leave alone (repeatable)")
	cmd.Flags().StringVar(&flags.report, "report", "", fmt.Sprintf("Report file path (default %q)", report.DefaultPath))
	cmd.Flags().StringVar(&flags.reportFormat, "report-format", "", "Report format: text, yaml or json (default text)")
	cmd.Flags().StringVar(&flags.config, "config", "", "Config file (default: .kebabify.{json,jsonc,yaml,yml} in the working directory)")
}

// runOptions is the effective configuration of one run after merging the
// config file and the flags.
type runOptions struct {
	root           string
	skip           []string
	reportPath     string
	reportFormat   report.Format
	dryRun         bool
	noGit          bool
	relativeOnly   bool
	kebabAncestors bool
}

// resolveOptions merges cfg with the flags. A flag given on the command line
// always wins; otherwise the config value is used, then the default.
func resolveOptions(cmd *cobra.Command, rootArg string, flags *runFlags, cfg *config.Config) (*runOptions, error) {
	opts := &runOptions{
		root:           firstNonEmpty(rootArg, cfg.Target, defaultRoot),
		dryRun:         flags.dryRun,
		noGit:          pickBool(cmd, "no-git", flags.noGit, cfg.NoGit),
		relativeOnly:   pickBool(cmd, "relative-only", flags.relativeOnly, cfg.RelativeOnly),
		kebabAncestors: pickBool(cmd, "kebab-ancestors", flags.kebabAncestors, cfg.KebabAncestors),
		reportPath:     firstNonEmpty(flags.report, cfg.Report, report.DefaultPath),
	}

	// Skip globs accumulate: config first, then flags.
	opts.skip = append(opts.skip, cfg.Skip...)
	opts.skip = append(opts.skip, flags.skip...)

	format, err := report.ParseFormat(firstNonEmpty(flags.reportFormat, cfg.ReportFormat))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid report format", err)
	}
	opts.reportFormat = format

	return opts, nil
}

// runKebab is the main logic function for the root command.
func runKebab(cmd *cobra.Command, rootArg string, flags *runFlags) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, cfgPath, err := config.Resolve(flags.config, cwd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		VerboseLog("Loaded config from %s", cfgPath)
	}

	opts, err := resolveOptions(cmd, rootArg, flags, cfg)
	if err != nil {
		return err
	}

	root, err := resolveRoot(opts.root)
	if err != nil {
		return err
	}
	if root != opts.root {
		VerboseLog("Resolved %s to %s", opts.root, root)
	}

	// Step 1: Precondition check and mover selection.
	m, err := selectMover(root, opts.noGit)
	if err != nil {
		return err
	}
	VerboseLog("Moving files with %s", m.Mode())

	// Step 2: Plan every rename before touching anything.
	walker, err := scan.NewWalker(opts.skip...)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid skip pattern", err)
	}
	VerboseLog("Skipping %s", strings.Join(walker.Patterns(), ", "))

	files, err := walker.Files(root)
	if err != nil {
		return fmt.Errorf("failed to list files under %s: %w", opts.root, err)
	}
	VerboseLog("Found %d files under %s", len(files), opts.root)

	plan, err := planner.Build(files, planner.Options{KebabAncestors: opts.kebabAncestors})
	if err != nil {
		var collision *planner.CollisionError
		if errors.As(err, &collision) {
			return model.WrapCLIError(model.ExitCollision, "refusing to rename", err)
		}
		return err
	}
	if plan.IsEmpty() {
		return model.NewCLIError(model.ExitNothingToDo, "no files or folders to rename")
	}
	tempSteps := 0
	for _, op := range plan.Operations {
		if op.IsTempStep() {
			tempSteps++
		}
		VerboseLog("Planned %s", op)
	}
	VerboseLog("Planned %d moves (%d through temporary names) covering %s",
		len(plan.Operations), tempSteps, formatCount(plan.Renames.Len(), "folder"))

	result := &model.RunResult{
		Root:       opts.root,
		VCS:        m.Mode(),
		DryRun:     opts.dryRun,
		Renames:    plan.Renames.Entries(),
		Operations: plan.Operations,
	}

	if opts.dryRun {
		if IsJSONOutput() {
			printRunResultJSON(out, result, "")
		} else {
			fmt.Fprint(out, mover.Script(plan.Operations, m))
		}
		return nil
	}

	// Step 3: Apply the moves. There is no rollback; the error names the
	// operation that failed so the user can finish or revert by hand.
	err = mover.Apply(root, plan.Operations, m, func(i int, op model.RenameOp) {
		VerboseLog("[%d/%d] %s", i+1, len(plan.Operations), m.Command(op))
	})
	if err != nil {
		return model.WrapCLIError(model.ExitMoveFailed, "failed to rename", err)
	}

	// Step 4: Rewrite references in the renamed tree.
	files, err = walker.Files(root)
	if err != nil {
		return fmt.Errorf("failed to list files under %s: %w", opts.root, err)
	}
	modified, err := rewrite.New(rewrite.Options{RelativeOnly: opts.relativeOnly}).RewriteTree(root, files)
	if err != nil {
		return err
	}
	for _, f := range modified {
		VerboseLog("Rewrote references in %s", f)
	}
	result.ModifiedFiles = modified

	// Step 5: Report.
	if err := report.Write(opts.reportPath, opts.reportFormat, result); err != nil {
		return err
	}

	printRunResult(out, result, opts.reportPath)
	return nil
}

// resolveRoot checks that root is a directory and returns it with symlinks
// resolved. The walk does not descend into a symlinked root, so every stage
// works on the resolved path; symlinks below the root are still not followed.
func resolveRoot(root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", model.NewCLIError(model.ExitTargetNotFound, fmt.Sprintf("directory %s does not exist", root))
	}
	if info, err := os.Stat(resolved); err != nil || !info.IsDir() {
		return "", model.NewCLIError(model.ExitTargetNotFound, fmt.Sprintf("directory %s does not exist", root))
	}
	return resolved, nil
}

// selectMover checks the working tree and picks how moves are performed.
//
// Git is used when it is installed and root is inside a repository; a clean
// working tree is then required. Anything else degrades to plain renames.
func selectMover(root string, noGit bool) (mover.Mover, error) {
	if noGit {
		return mover.NewFSMover(root), nil
	}

	git := vcs.NewManager()
	if !git.Available() {
		VerboseLog("git not found on PATH, using plain renames")
		return mover.NewFSMover(root), nil
	}

	entries, err := git.Status(root)
	if errors.Is(err, vcs.ErrNotRepository) {
		VerboseLog("%s is not inside a Git repository, using plain renames", root)
		return mover.NewFSMover(root), nil
	}
	if err != nil {
		return nil, err
	}

	if dirty := vcs.DirtyPaths(entries); len(dirty) > 0 {
		// Status paths are relative to the repository top level, which may
		// lie above root; name it so the paths can be found.
		top, err := git.GetRepoRoot(root)
		if err != nil {
			top = ""
		}
		return nil, model.NewCLIError(model.ExitDirtyTree, formatDirtyMessage(top, dirty))
	}

	return mover.NewGitMover(root, git), nil
}

// formatDirtyMessage explains which paths block the run. repo is the
// repository top level the paths are relative to; it is omitted when empty.
func formatDirtyMessage(repo string, dirty []string) string {
	noun := "files"
	if len(dirty) == 1 {
		noun = "file"
	}
	where := ""
	if repo != "" {
		where = " in " + repo
	}
	return fmt.Sprintf("Git is showing %d dirty %s%s, (%s) please fix and retry", len(dirty), noun, where, strings.Join(dirty, ", "))
}

// printRunResult outputs the result in the appropriate format (JSON or text).
func printRunResult(out io.Writer, result *model.RunResult, reportPath string) {
	if IsJSONOutput() {
		printRunResultJSON(out, result, reportPath)
	} else {
		printRunResultText(out, result, reportPath)
	}
}

// printRunResultJSON outputs the result as JSON.
func printRunResultJSON(out io.Writer, result *model.RunResult, reportPath string) {
	type resultJSON struct {
		*model.RunResult
		Report string `json:"report,omitempty"`
	}

	data, _ := json.MarshalIndent(resultJSON{RunResult: result, Report: reportPath}, "", "  ")
	fmt.Fprintln(out, string(data))
}

// printRunResultText outputs the result in human-readable format.
func printRunResultText(out io.Writer, result *model.RunResult, reportPath string) {
	fmt.Fprintf(out, "Kebab-ified %q\n", result.Root)
	fmt.Fprintf(out, "  Moves:     %d (%s)\n", len(result.Operations), result.VCS)
	fmt.Fprintf(out, "  Renamed:   %s\n", formatCount(len(result.Renames), "folder"))
	fmt.Fprintf(out, "  Rewritten: %s\n", formatCount(len(result.ModifiedFiles), "file"))
	fmt.Fprintf(out, "  Report:    %s\n", reportPath)
	fmt.Fprintln(out, "Done")
}

// formatCount renders n with a pluralized noun: "1 file", "3 files".
func formatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func pickBool(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
