// Package scan lists the files a kebab-ify pass operates on.
//
// Both passes (planning and reference rewriting) traverse the tree through
// the same Walker so they see the same skip-list. Skip patterns are
// doublestar globs (github.com/bmatcuk/doublestar/v4) and are matched
// against both the base name and the root-relative path of every entry, so
// "setupTests.*" and "legacy/**" work the same way a .gitignore user
// would expect.
package scan
