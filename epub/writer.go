package epub

import (
	"archive/zip"
	"fmt"
	"io"
)

// Writer produces an ePub archive. The "mimetype" entry is always written
// first and stored uncompressed, as the OCF container format requires.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	zw      *zip.Writer
	written map[string]bool
}

// NewWriter returns a Writer emitting an archive to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(w), written: make(map[string]bool)}
}

// WriteMimetype writes the stored "mimetype" entry. Create and Copy call
// it implicitly, so calling it directly is only needed for empty books.
func (w *Writer) WriteMimetype() error {
	if w.written["mimetype"] {
		return nil
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}
	if _, err := io.WriteString(fw, expectedMimetype); err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}
	w.written["mimetype"] = true
	return nil
}

func (w *Writer) claim(name string) error {
	if err := w.WriteMimetype(); err != nil {
		return err
	}
	if !insideRoot(name) {
		return fmt.Errorf("epub: unsafe archive path: %s", name)
	}
	if w.written[name] {
		return fmt.Errorf("epub: %s: %w", name, ErrDuplicateEntry)
	}
	w.written[name] = true
	return nil
}

// Has reports whether name has already been written.
func (w *Writer) Has(name string) bool {
	return w.written[name]
}

// Create adds a deflated entry and returns a writer for its content.
// The returned writer is valid until the next call on w.
func (w *Writer) Create(name string) (io.Writer, error) {
	if err := w.claim(name); err != nil {
		return nil, err
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("epub: create %s: %w", name, err)
	}
	return fw, nil
}

// Copy transfers the named entry of b without recompressing it.
func (w *Writer) Copy(b *Book, name string) error {
	f := b.lookup(name)
	if f == nil {
		return fmt.Errorf("epub: %s: %w", name, ErrFileNotFound)
	}
	if err := w.claim(f.Name); err != nil {
		return err
	}
	if err := w.zw.Copy(f); err != nil {
		return fmt.Errorf("epub: copy %s: %w", f.Name, err)
	}
	return nil
}

// Close finishes the archive. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.WriteMimetype(); err != nil {
		return err
	}
	return w.zw.Close()
}
