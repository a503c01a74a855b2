// Package epub reads and rewrites ePub 2 and ePub 3 containers.
//
// It is deliberately narrow: it locates the package document, lists the
// manifest items with their media types, reads entries with zip-bomb and
// path traversal guards, and writes a new archive in which selected
// entries are replaced and everything else is copied byte for byte.
//
//	book, err := epub.Open("book.epub")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer book.Close()
//
//	for _, item := range book.Items() {
//	    if epub.IsMarkup(item.MediaType) {
//	        data, _ := book.ReadFile(item.Href)
//	        fmt.Println(item.Href, len(data))
//	    }
//	}
//
// DRM-protected books are rejected with [ErrDRMProtected]; font
// obfuscation alone is reported through [Book.Warnings].
package epub
