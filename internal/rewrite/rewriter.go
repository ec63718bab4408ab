package rewrite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shinji-kodama/kebabify/internal/naming"
)

// referencePattern matches `import '<path>'`, `from '<path>'` and
// `require('<path>')`. The path ends at the quote that opened it, so the
// other quote character may appear inside. Submatches: 1 keyword prefix,
// 2 single-quoted path, 3 double-quoted path.
var referencePattern = regexp.MustCompile(`(import\s+|from\s+|require\()(?:'([^']*)'|"([^"]*)")`)

// Options tunes which references are rewritten.
type Options struct {
	// RelativeOnly limits rewriting to paths starting with "./", "../" or
	// "/", leaving bare package specifiers such as "@scope/Pkg" alone.
	RelativeOnly bool
}

// Rewriter rewrites references in lines, contents and files.
type Rewriter struct {
	opts Options
}

// New creates a Rewriter.
func New(opts Options) *Rewriter {
	return &Rewriter{opts: opts}
}

// RewriteLine normalizes the path of every reference on line. Everything
// except the path text itself, including keyword, spacing and quotes, is
// kept verbatim. It reports whether the line changed.
func (r *Rewriter) RewriteLine(line string) (string, bool) {
	matches := referencePattern.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line, false
	}

	var b strings.Builder
	last := 0
	changed := false
	for _, m := range matches {
		start, end := m[4], m[5]
		if start < 0 {
			start, end = m[6], m[7]
		}
		ref := line[start:end]
		if r.opts.RelativeOnly && !isRelative(ref) {
			continue
		}
		normalized := naming.Normalize(ref)
		if normalized == ref {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(normalized)
		last = end
		changed = true
	}
	if !changed {
		return line, false
	}
	b.WriteString(line[last:])
	return b.String(), true
}

// RewriteContent applies RewriteLine to each "\n"-separated line. Line
// endings, including a trailing newline or "\r\n", survive unchanged.
func (r *Rewriter) RewriteContent(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	dirty := false
	for i, line := range lines {
		if rewritten, changed := r.RewriteLine(line); changed {
			lines[i] = rewritten
			dirty = true
		}
	}
	if !dirty {
		return content, false
	}
	return strings.Join(lines, "\n"), true
}

// RewriteFile rewrites the file at path in place when at least one line
// changed. Binary files are skipped. It reports whether the file was written.
func (r *Rewriter) RewriteFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if isBinary(data) {
		return false, nil
	}

	rewritten, changed := r.RewriteContent(string(data))
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// RewriteTree rewrites every root-relative, slash-separated file in files
// and returns the ones that changed, in the order given.
func (r *Rewriter) RewriteTree(root string, files []string) ([]string, error) {
	var modified []string
	for _, rel := range files {
		changed, err := r.RewriteFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return modified, fmt.Errorf("failed to rewrite references in %s: %w", rel, err)
		}
		if changed {
			modified = append(modified, rel)
		}
	}
	return modified, nil
}

func isRelative(ref string) bool {
	return ref == "." || ref == ".." ||
		strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || strings.HasPrefix(ref, "/")
}

// isBinary treats content with a NUL byte or invalid UTF-8 as binary.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}
