// Package naming converts path segments to kebab-case.
//
// Normalize is the single source of truth for the naming rule. The planner
// applies it to directory and file names, and the reference rewriter applies
// it again, independently, to the path text inside import statements. Both
// passes agree because the function is pure and idempotent.
package naming
