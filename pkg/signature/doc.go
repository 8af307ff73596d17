// Package signature defines the signature data model: the owner's contact
// fields, social handles, the template and color scheme, and the in-memory
// save stub.
//
// Records are values. Updates arrive as partial patches and are applied with
// Merge, which always returns a fresh copy:
//
//	data, style := signature.Default()
//	data = data.Merge(signature.Patch{Name: signature.String("Jane Lee")})
//	style = style.Merge(signature.StylePatch{TextColor: signature.String("#000000")})
//
// Social handles are resolved with Href. Values that already start with a
// scheme pass through unchanged, bare handles expand per platform, and
// discord handles are display-only:
//
//	signature.Href(signature.GitHub, "octocat")      // "https://github.com/octocat", true
//	signature.Href(signature.Discord, "user#1234")   // "", false
//
// Unknown templates fall back to Tech through Template.OrDefault.
package signature
