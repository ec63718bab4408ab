// Package rewrite updates module references after the renaming pass.
//
// It is a line-oriented textual substitution, not a parser. One pattern
// recognizes three forms of reference on a single line:
//
//	import './Styles.css'
//	import Avatar from '../Components/Avatar'
//	const Avatar = require('../Components/Avatar')
//
// The quoted path is normalized with naming.Normalize, independently of the
// rename map, which works because normalization is idempotent. Statements
// split across lines are not recognized.
package rewrite
