// Package planner computes the rename plan for a tree in a single pass over
// its file list.
//
// For each file three things may be scheduled, in this order:
//   - ancestor directories (all but the immediate parent) containing an
//     uppercase letter are lowercased
//   - the immediate parent directory is renamed to its kebab-case form
//   - the file itself is renamed to its kebab-case form
//
// Directory renames are recorded in a first-seen-wins RenameMap. Every
// operation's source and destination are resolved through that map, so each
// operation names paths as they exist once all earlier operations have run.
// Renames that could be mistaken for a no-op on a case-insensitive
// filesystem go through an intermediate ".temp-rename" path.
package planner
