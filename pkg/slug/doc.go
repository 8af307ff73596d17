// Package slug turns arbitrary text into URL and filename safe slugs.
//
// Diacritics are folded with Unicode decomposition, so "Zoë Saldaña" becomes
// "zoe-saldana", and everything outside ASCII letters and digits collapses
// into a single separator:
//
//	slug.Make("Jane Lee")                      // "jane-lee"
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	                                           // "fish-and-chips"
//	slug.Make("Too long a title", slug.MaxLength(8))
//	                                           // "too-long"
//
// The result never starts or ends with a separator and is empty when the
// input has no letters or digits at all.
package slug
