package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"mime"
	"strings"
)

// expectedMimetype is the required content of the "mimetype" entry.
const expectedMimetype = "application/epub+zip"

// markupMediaType is the manifest media type of XHTML content documents.
const markupMediaType = "application/xhtml+xml"

// Metadata holds the Dublin Core fields used to describe a book.
type Metadata struct {
	// Version is the package version attribute ("2.0" when absent).
	Version string

	// Titles contains all non-empty dc:title values in document order.
	Titles []string

	// Creators contains all non-empty dc:creator values.
	Creators []string

	// Language contains all dc:language values.
	Language []string
}

// Title returns the first title, or "" when the book has none.
func (m Metadata) Title() string {
	if len(m.Titles) == 0 {
		return ""
	}
	return m.Titles[0]
}

// Item is a manifest entry.
type Item struct {
	// ID is the manifest id attribute.
	ID string

	// Href is the archive path of the resource, resolved against the
	// package document and matched to the actual entry name when present.
	Href string

	// MediaType is the manifest media-type attribute.
	MediaType string

	// Properties holds the ePub 3 properties attribute (e.g. "nav").
	Properties string
}

// IsMarkup reports whether mediaType denotes an XHTML content document.
// Parameters such as charset are ignored.
func IsMarkup(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		mt = strings.TrimSpace(mediaType)
	}
	return strings.EqualFold(mt, markupMediaType)
}

// Book is an opened ePub container.
//
// Reads are safe for concurrent use once the Book is open; Close must not
// race with them.
type Book struct {
	zip      *zip.Reader
	exact    map[string]*zip.File
	folded   map[string]*zip.File
	closer   io.Closer // set only by Open
	opfPath  string
	items    []Item
	metadata Metadata
	warnings []string
}

// Open opens the ePub file at path. The caller must Close the Book.
func Open(path string) (*Book, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epub: open %s: %w", path, err)
	}
	b, err := newBook(&rc.Reader, rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return b, nil
}

// NewReader reads an ePub from r. The caller owns r; Close only releases
// internal state.
func NewReader(r io.ReaderAt, size int64) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("epub: open zip: %w", err)
	}
	return newBook(zr, nil)
}

func newBook(zr *zip.Reader, closer io.Closer) (*Book, error) {
	b := &Book{zip: zr, closer: closer}
	b.index()
	b.checkMimetype()

	opfPath, err := locatePackage(zr)
	if err != nil {
		return nil, err
	}
	b.opfPath = opfPath

	obfuscated, err := inspectEncryption(zr)
	if err != nil {
		return nil, err
	}
	if obfuscated {
		b.warnings = append(b.warnings, "font obfuscation detected; obfuscated fonts are copied unchanged")
	}

	f := b.lookup(opfPath)
	if f == nil {
		return nil, fmt.Errorf("epub: OPF file not found in archive: %s: %w", opfPath, ErrInvalidEPub)
	}
	data, err := readEntry(f)
	if err != nil {
		return nil, fmt.Errorf("epub: read OPF file: %w", err)
	}
	pkg, err := parsePackage(data)
	if err != nil {
		return nil, err
	}
	b.metadata = pkg.metadata()

	for _, mi := range pkg.Manifest.Items {
		href := joinHref(opfPath, mi.Href)
		if href == "" {
			b.warnings = append(b.warnings, fmt.Sprintf("manifest item %q has unusable href %q", mi.ID, mi.Href))
			continue
		}
		if f := b.lookup(href); f != nil {
			href = f.Name
		}
		b.items = append(b.items, Item{
			ID:         mi.ID,
			Href:       href,
			MediaType:  strings.TrimSpace(mi.MediaType),
			Properties: mi.Properties,
		})
	}
	return b, nil
}

// index builds the exact and case-folded entry maps. The first entry with
// a given name wins.
func (b *Book) index() {
	b.exact = make(map[string]*zip.File, len(b.zip.File))
	b.folded = make(map[string]*zip.File, len(b.zip.File))
	for _, f := range b.zip.File {
		if _, ok := b.exact[f.Name]; !ok {
			b.exact[f.Name] = f
		}
		lower := strings.ToLower(f.Name)
		if _, ok := b.folded[lower]; !ok {
			b.folded[lower] = f
		}
	}
}

func (b *Book) lookup(name string) *zip.File {
	if f, ok := b.exact[name]; ok {
		return f
	}
	return b.folded[strings.ToLower(name)]
}

// checkMimetype records a warning unless the first entry is a "mimetype"
// file holding application/epub+zip.
func (b *Book) checkMimetype() {
	if len(b.zip.File) == 0 {
		b.warnings = append(b.warnings, "empty ZIP archive; mimetype entry missing")
		return
	}
	first := b.zip.File[0]
	if first.Name != "mimetype" {
		b.warnings = append(b.warnings, `first ZIP entry is not "mimetype"`)
		return
	}
	data, err := readEntry(first)
	if err != nil {
		b.warnings = append(b.warnings, fmt.Sprintf("cannot read mimetype entry: %v", err))
		return
	}
	if got := strings.TrimSpace(string(data)); got != expectedMimetype {
		b.warnings = append(b.warnings, fmt.Sprintf("unexpected mimetype: %q", got))
	}
}

// Close releases the underlying file when the Book came from Open.
// It is safe to call more than once.
func (b *Book) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}

// ReadFile returns the decompressed content of the named entry. Lookup
// falls back to a case-insensitive match.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f := b.lookup(name)
	if f == nil {
		return nil, fmt.Errorf("epub: %s: %w", name, ErrFileNotFound)
	}
	return readEntry(f)
}

// Files returns the names of all archive entries in archive order.
func (b *Book) Files() []string {
	names := make([]string, 0, len(b.zip.File))
	for _, f := range b.zip.File {
		names = append(names, f.Name)
	}
	return names
}

// Items returns the manifest items in manifest order.
func (b *Book) Items() []Item {
	return append([]Item(nil), b.items...)
}

// PackagePath returns the archive path of the OPF package document.
func (b *Book) PackagePath() string {
	return b.opfPath
}

// Metadata returns a copy of the book's metadata.
func (b *Book) Metadata() Metadata {
	md := b.metadata
	md.Titles = append([]string(nil), md.Titles...)
	md.Creators = append([]string(nil), md.Creators...)
	md.Language = append([]string(nil), md.Language...)
	return md
}

// Warnings returns the non-fatal problems found while opening the book.
func (b *Book) Warnings() []string {
	return append([]string(nil), b.warnings...)
}
