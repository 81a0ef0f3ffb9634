// Package html provides a Normaliser for HTML manuscripts. It walks the
// parsed node tree, drops non-prose elements and turns block elements into
// paragraph breaks so exported e-books segment like plain text.
package html
