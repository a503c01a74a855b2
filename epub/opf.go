package epub

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

type packageDoc struct {
	XMLName  xml.Name `xml:"package"`
	Version  string   `xml:"version,attr"`
	Metadata struct {
		Titles    []dcElement `xml:"http://purl.org/dc/elements/1.1/ title"`
		Creators  []dcElement `xml:"http://purl.org/dc/elements/1.1/ creator"`
		Languages []dcElement `xml:"http://purl.org/dc/elements/1.1/ language"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID         string `xml:"id,attr"`
			Href       string `xml:"href,attr"`
			MediaType  string `xml:"media-type,attr"`
			Properties string `xml:"properties,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
}

type dcElement struct {
	Value string `xml:",chardata"`
}

// namedEntity matches an HTML named character reference.
var namedEntity = regexp.MustCompile(`&[A-Za-z][A-Za-z0-9]*;`)

// xmlEntities are the references encoding/xml resolves on its own.
var xmlEntities = map[string]bool{
	"&amp;": true, "&lt;": true, "&gt;": true, "&quot;": true, "&apos;": true,
}

// numericEntities rewrites HTML named references, which many ePub tools
// leave in package documents, into numeric ones encoding/xml accepts.
// Unknown names are left alone.
func numericEntities(data []byte) []byte {
	return namedEntity.ReplaceAllFunc(data, func(ref []byte) []byte {
		if xmlEntities[string(ref)] {
			return ref
		}
		decoded := html.UnescapeString(string(ref))
		if decoded == string(ref) {
			return ref
		}
		var b strings.Builder
		for _, r := range decoded {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		}
		return []byte(b.String())
	})
}

func parsePackage(data []byte) (*packageDoc, error) {
	var pkg packageDoc
	if err := xml.Unmarshal(numericEntities(trimBOM(data)), &pkg); err != nil {
		return nil, fmt.Errorf("epub: parse OPF: %w", err)
	}
	if pkg.Version == "" {
		pkg.Version = "2.0"
	}
	return &pkg, nil
}

func (p *packageDoc) metadata() Metadata {
	return Metadata{
		Version:  p.Version,
		Titles:   dcValues(p.Metadata.Titles),
		Creators: dcValues(p.Metadata.Creators),
		Language: dcValues(p.Metadata.Languages),
	}
}

func dcValues(els []dcElement) []string {
	var out []string
	for _, e := range els {
		if v := strings.TrimSpace(e.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}
