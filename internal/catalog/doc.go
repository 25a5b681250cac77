// Package catalog parses the Quik CSS documentation page into blocks the
// terminal browser can render.
//
// The page ships embedded (quik.html) and can be replaced with catalog_path.
// Parsing uses goquery:
//
//   - header .brand and header nav a become the title and header links
//   - aside nav li become sidebar groups (li without a link) and items
//   - everything under <main> becomes markdown blocks in document order
//   - footer p and footer a become the footer
//
// Elements that hold only inline content are leaves. Runs of sibling leaves
// are coalesced into one bulleted list; a lone leaf is a paragraph, or a code
// block when it holds nothing but a <code> span. Every element with an id is
// recorded as an Anchor covering the half-open block range it produced.
// Anchors appear in document order, so a nested anchor always follows the
// anchor that contains it.
package catalog
