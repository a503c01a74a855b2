package bionic

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// xmlDeclaration matches a leading <?xml ...?> declaration and the line
// break after it. The HTML parser would otherwise turn it into a comment.
var xmlDeclaration = regexp.MustCompile(`^\s*<\?xml\b[^>]*\?>[ \t]*\r?\n?`)

// selfClosingTag matches an XHTML empty-element tag such as <a id="x"/>.
var selfClosingTag = regexp.MustCompile(`(?s)<([A-Za-z][A-Za-z0-9:_.-]*)(\s[^<>]*?)?/>`)

// voidElements may legitimately be written as <br/> in HTML.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// expandSelfClosing rewrites <tag/> into <tag></tag> for non-void elements.
// An HTML parser ignores the slash, so <a id="x"/> would otherwise swallow
// the rest of the paragraph.
func expandSelfClosing(data []byte) []byte {
	return selfClosingTag.ReplaceAllFunc(data, func(tag []byte) []byte {
		m := selfClosingTag.FindSubmatch(tag)
		name := string(m[1])
		if voidElements[strings.ToLower(name)] {
			return tag
		}
		attrs := bytes.TrimRight(m[2], " \t\r\n")
		out := make([]byte, 0, len(tag)+len(name)+3)
		out = append(out, '<')
		out = append(out, name...)
		out = append(out, attrs...)
		out = append(out, "></"...)
		out = append(out, name...)
		return append(out, '>')
	})
}

// ConvertDocument rewrites the paragraphs of one (X)HTML document.
//
// A leading byte order mark is dropped and a leading XML declaration is
// carried over verbatim. The rest of the document is parsed leniently and
// rendered back; malformed markup is repaired the way browsers repair it.
func ConvertDocument(data []byte, opts Options) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var decl []byte
	if loc := xmlDeclaration.FindIndex(data); loc != nil {
		decl = data[loc[0]:loc[1]]
		data = data[loc[1]:]
	}

	doc, err := html.Parse(bytes.NewReader(expandSelfClosing(data)))
	if err != nil {
		return nil, fmt.Errorf("bionic: parse markup: %w", err)
	}
	opts.ApplyToParagraphs(doc)

	var buf bytes.Buffer
	buf.Grow(len(decl) + len(data) + len(data)/4)
	buf.Write(bytes.TrimLeft(decl, " \t\r\n"))
	if len(decl) > 0 && !bytes.HasSuffix(decl, []byte("\n")) {
		buf.WriteByte('\n')
	}
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("bionic: render markup: %w", err)
	}
	return buf.Bytes(), nil
}
