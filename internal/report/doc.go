// Package report renders the summary of a run to a file.
//
// The default text layout lists the directory renames and the files whose
// references were rewritten:
//
//	Kebab-ification report
//	File/folder renames:
//	  * Components => components
//	Files modified:
//	  * components/my-widget/my-widget.js
//
// The same data can be written as YAML or JSON for tooling.
package report
