package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// maxEntrySize caps the decompressed size of a single archive entry.
const maxEntrySize int64 = 256 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lookupEntry finds an entry by exact name, then case-insensitively.
func lookupEntry(zr *zip.Reader, name string) *zip.File {
	var folded *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
		if folded == nil && strings.EqualFold(f.Name, name) {
			folded = f
		}
	}
	return folded
}

// joinHref resolves an href found in the document at base into an archive
// path. It returns "" when the result would leave the archive root.
func joinHref(base, href string) string {
	href = strings.TrimSpace(href)
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	p := path.Join(path.Dir(base), href)
	if !insideRoot(p) {
		return ""
	}
	return p
}

// insideRoot reports whether p stays within the archive root.
func insideRoot(p string) bool {
	p = path.Clean(p)
	return !strings.HasPrefix(p, "/") && p != ".." && !strings.HasPrefix(p, "../")
}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

func readEntry(f *zip.File) ([]byte, error) {
	return readEntryLimit(f, maxEntrySize)
}

// readEntryLimit reads f fully, refusing unsafe names and anything that
// decompresses to more than limit bytes, whatever the header claims.
func readEntryLimit(f *zip.File, limit int64) ([]byte, error) {
	if !insideRoot(f.Name) {
		return nil, fmt.Errorf("epub: unsafe zip entry path: %s", f.Name)
	}
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("epub: zip entry %s too large: %d bytes (max %d)", f.Name, f.UncompressedSize64, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("epub: open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("epub: read zip entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("epub: zip entry %s exceeds %d bytes when decompressed", f.Name, limit)
	}
	return data, nil
}
