// Package normalize turns a preview snapshot into portable HTML.
//
// Document produces the full export: editor residue is stripped, every
// element gets its resolved style for a fixed list of properties appended
// inline, and the markup is wrapped in a standalone document with a reset
// stylesheet and the template's web font. RichText produces the lighter
// clipboard fragment: editor residue and classes are removed by a
// bluemonday policy, styles are left as the renderer wrote them.
package normalize
