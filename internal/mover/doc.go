// Package mover applies a planned rename sequence to the filesystem.
//
// Operations run strictly one after another, in plan order: directory moves
// change the paths later operations refer to, so nothing is reordered or run
// concurrently. The first failure stops the run. Moves already applied stay
// applied; the clean-working-tree precondition is what lets the operator
// revert them.
package mover
