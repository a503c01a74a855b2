package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	containerPath   = "META-INF/container.xml"
	packageMimetype = "application/oebps-package+xml"
)

type containerDoc struct {
	XMLName   xml.Name `xml:"container"`
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// locatePackage returns the archive path of the OPF package document.
// container.xml is authoritative when present; otherwise the first entry
// with an .opf extension is used.
func locatePackage(zr *zip.Reader) (string, error) {
	f := lookupEntry(zr, containerPath)
	if f == nil {
		for _, e := range zr.File {
			if strings.HasSuffix(strings.ToLower(e.Name), ".opf") {
				return e.Name, nil
			}
		}
		return "", fmt.Errorf("epub: no OPF file found in archive: %w", ErrInvalidEPub)
	}

	data, err := readEntry(f)
	if err != nil {
		return "", fmt.Errorf("epub: read container.xml: %w", err)
	}
	var c containerDoc
	if err := xml.Unmarshal(trimBOM(data), &c); err != nil {
		return "", fmt.Errorf("epub: parse container.xml: %w", err)
	}

	// Prefer the rootfile declared as an OPF package; fall back to the
	// first one with a path.
	first := ""
	for _, rf := range c.RootFiles {
		p := strings.TrimSpace(rf.FullPath)
		if p == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), packageMimetype) {
			return p, nil
		}
		if first == "" {
			first = p
		}
	}
	if first == "" {
		return "", fmt.Errorf("epub: container.xml names no rootfile: %w", ErrInvalidEPub)
	}
	return first, nil
}
