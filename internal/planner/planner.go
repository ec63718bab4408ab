package planner

import (
	"fmt"
	"path"
	"strings"

	"github.com/shinji-kodama/kebabify/internal/model"
	"github.com/shinji-kodama/kebabify/internal/naming"
)

// CollisionError reports two distinct source paths that would end up at the
// same final path. Nothing has been moved when it is returned.
type CollisionError struct {
	Destination string
	First       string
	Second      string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%q and %q would both be renamed to %q", e.First, e.Second, e.Destination)
}

// Options tunes planning.
type Options struct {
	// KebabAncestors applies the kebab-case rule to ancestor directories
	// instead of plain lowercasing, so a nested "MyWidget/Inner" ends up as
	// "my-widget/inner" and matches rewritten references.
	KebabAncestors bool
}

// Planner accumulates the rename plan one file at a time. The zero value is
// not usable; create one with New.
type Planner struct {
	opts    Options
	renames *model.RenameMap
	ops     []model.RenameOp
}

// New creates an empty Planner.
func New(opts Options) *Planner {
	return &Planner{opts: opts, renames: model.NewRenameMap()}
}

// Build plans renames for a complete, root-relative, slash-separated file
// list and checks the result for collisions. The caller decides what an
// empty plan means; see model.Plan.IsEmpty.
func Build(files []string, opts Options) (*model.Plan, error) {
	p := New(opts)
	for _, f := range files {
		p.Add(f)
	}
	if err := p.CheckCollisions(files); err != nil {
		return nil, err
	}
	return p.Plan(), nil
}

// Add schedules the renames needed for one file.
func (p *Planner) Add(file string) {
	dir, name := path.Dir(file), path.Base(file)

	var segments []string
	if dir != "." {
		segments = strings.Split(dir, "/")
	}

	// Ancestors other than the immediate parent: any capital letter triggers
	// a rename, lowercase unless KebabAncestors is set.
	for i := 0; i < len(segments)-1; i++ {
		seg := segments[i]
		if !naming.HasUpper(seg) {
			continue
		}
		original := strings.Join(segments[:i+1], "/")
		if p.renames.Has(original) {
			continue
		}
		parent := p.resolve(strings.Join(segments[:i], "/"))
		p.renameDir(original, join(parent, seg), join(parent, p.ancestorName(seg)))
	}

	// Immediate parent: kebab-case rule on the whole path.
	if dir != "." && naming.Normalize(dir) != dir && !p.renames.Has(dir) {
		parent := p.resolve(path.Dir(dir))
		seg := path.Base(dir)
		p.renameDir(dir, join(parent, seg), join(parent, naming.Normalize(seg)))
	}

	// The file itself, inside its already renamed parent.
	if newName := naming.Normalize(name); newName != name {
		parent := p.resolve(dir)
		p.schedule(join(parent, name), join(parent, newName), false)
	}
}

// Plan returns the accumulated plan.
func (p *Planner) Plan() *model.Plan {
	ops := make([]model.RenameOp, len(p.ops))
	copy(ops, p.ops)
	return &model.Plan{Renames: p.renames, Operations: ops}
}

// CheckCollisions verifies that no two distinct original paths (files or
// directories) end up at the same final path, comparing case-insensitively.
// It must run after every file has been added, because later directory
// renames move earlier files.
func (p *Planner) CheckCollisions(files []string) error {
	owners := make(map[string]string)
	claim := func(final, original string) error {
		key := naming.Lower(final)
		if owner, ok := owners[key]; ok && owner != original {
			return &CollisionError{Destination: final, First: owner, Second: original}
		}
		owners[key] = original
		return nil
	}

	for _, f := range files {
		dir, name := path.Dir(f), path.Base(f)
		if dir != "." {
			segments := strings.Split(dir, "/")
			for i := range segments {
				d := strings.Join(segments[:i+1], "/")
				if err := claim(p.resolve(d), d); err != nil {
					return err
				}
			}
		}
		if err := claim(join(p.resolve(dir), naming.Normalize(name)), f); err != nil {
			return err
		}
	}
	return nil
}

func (p *Planner) ancestorName(seg string) string {
	if p.opts.KebabAncestors {
		return naming.Normalize(seg)
	}
	return naming.Lower(seg)
}

// renameDir records original and schedules the move from src to dst. A
// directory whose own name is already correct (only an ancestor changed) is
// recorded but needs no move.
func (p *Planner) renameDir(original, src, dst string) {
	p.renames.Set(original, dst)
	if src != dst {
		p.schedule(src, dst, true)
	}
}

// schedule appends src → dst, split through a temporary name when needed.
func (p *Planner) schedule(src, dst string, isDir bool) {
	if NeedsTempStep(src, dst) {
		tmp := dst + model.TempSuffix
		p.ops = append(p.ops,
			model.RenameOp{Source: src, Destination: tmp, IsDir: isDir},
			model.RenameOp{Source: tmp, Destination: dst, IsDir: isDir},
		)
		return
	}
	p.ops = append(p.ops, model.RenameOp{Source: src, Destination: dst, IsDir: isDir})
}

// NeedsTempStep reports whether renaming src to dst must go through a
// temporary name. That is the case when the new name has no hyphen (the
// kebab rule only changed letter case) or when the two paths differ only in
// case; a case-insensitive filesystem may treat either as a no-op.
func NeedsTempStep(src, dst string) bool {
	return !strings.Contains(path.Base(dst), "-") || strings.EqualFold(src, dst)
}

// resolve maps an original root-relative directory path to where it lives
// after every rename recorded so far. Only the final segment of a recorded
// rename is taken, so a rename of an ancestor recorded later is still
// reflected.
func (p *Planner) resolve(original string) string {
	if original == "" || original == "." {
		return ""
	}
	segments := strings.Split(original, "/")
	current := ""
	for i, seg := range segments {
		if renamed, ok := p.renames.Get(strings.Join(segments[:i+1], "/")); ok {
			seg = path.Base(renamed)
		}
		current = join(current, seg)
	}
	return current
}

func join(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}
