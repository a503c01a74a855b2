package epub

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// entry is one file of a test archive.
type entry struct {
	name, body string
}

// zipBytes builds an archive holding entries in the given order.
func zipBytes(t *testing.T, entries ...entry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("zipBytes: create %s: %v", e.name, err)
		}
		if _, err := io.WriteString(fw, e.body); err != nil {
			t.Fatalf("zipBytes: write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zipBytes: close: %v", err)
	}
	return buf.Bytes()
}

// zipReader builds an archive and opens it for reading.
func zipReader(t *testing.T, entries ...entry) *zip.Reader {
	t.Helper()
	data := zipBytes(t, entries...)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zipReader: %v", err)
	}
	return zr
}

// openBook builds an archive and opens it as a Book.
func openBook(t *testing.T, entries ...entry) *Book {
	t.Helper()
	data := zipBytes(t, entries...)
	b, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return b
}

// writeBookFile stores an archive in a temporary file and returns its path.
func writeBookFile(t *testing.T, entries ...entry) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "test.epub")
	if err := os.WriteFile(fp, zipBytes(t, entries...), 0o644); err != nil {
		t.Fatalf("writeBookFile: %v", err)
	}
	return fp
}

const testContainer = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const testPackage = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>A Short Book</dc:title>
    <dc:creator>Jane Writer</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ch1" href="text/ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="css" href="style.css" media-type="text/css"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
  </spine>
</package>`

// testBook returns the entries of a small valid ePub 3 book.
func testBook() []entry {
	return []entry{
		{"mimetype", expectedMimetype},
		{"META-INF/container.xml", testContainer},
		{"OEBPS/content.opf", testPackage},
		{"OEBPS/nav.xhtml", `<html><body><nav><ol><li>One</li></ol></nav></body></html>`},
		{"OEBPS/text/ch1.xhtml", `<html><body><p>Hello world</p></body></html>`},
		{"OEBPS/style.css", `p { margin: 0 }`},
	}
}
