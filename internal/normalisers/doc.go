// Package normalisers turns manuscript files of several formats into plain
// text whose paragraphs are separated by blank lines. Each sub-package
// handles one family of MIME types; the Registry picks between them.
//
// Normalisers are registered with the Registry at startup via
// RegisterDefaults.
package normalisers
