// Package bionic renders text in "bionic reading" style: the leading part
// of every word is emphasised to guide the eye, and nothing else about the
// text changes.
//
// The transform is a small pipeline. [Segment] splits a string into
// whitespace runs, dash runs and content tokens; [BoldCount] maps the number
// of letters and digits in a token to the length of its emphasised prefix;
// [EmitRuns] cuts a content token into a bold run and a plain run. Joining
// the runs of a string always reproduces the string exactly:
//
//	for _, r := range bionic.Runs("it's wordy-phrase") {
//	    fmt.Printf("%q bold=%v\n", r.Text, r.Bold)
//	}
//
// # Markup
//
// [Options.ApplyToParagraphs] rewrites the direct text children of paragraph
// elements in a parsed golang.org/x/net/html tree, wrapping each emphasised
// prefix in a <b> element. Nested inline elements are left untouched.
// [ConvertDocument] wraps parsing, the rewrite and rendering for a single
// XHTML document.
//
// # Books
//
// [ConvertBook] and [ConvertFile] rewrite every XHTML content document of an
// ePub and copy all other entries unchanged:
//
//	stats, err := bionic.ConvertFile(ctx, "book.epub", "Bionic_book.epub", bionic.BookOptions{
//	    Progress: func(done float64) { fmt.Printf("\r%3.0f%%", done*100) },
//	})
//
// Content documents are independent, so they are converted concurrently;
// each worker owns the tree it mutates.
package bionic
