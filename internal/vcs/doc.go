// Package vcs provides the Git operations kebab-ify needs: a working tree
// status check and a move primitive.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal,
//     including how `git mv` treats case-only renames
//   - Keeps the index in sync with the renames, so the result can be
//     reviewed with `git status` and reverted with `git checkout`
//
// A clean working tree is the tool's only rollback mechanism, which is why
// the status check runs before anything is touched.
package vcs
