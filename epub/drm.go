package epub

import (
	"archive/zip"
	"encoding/xml"
)

const (
	encryptionPath = "META-INF/encryption.xml"
	fairPlayPath   = "META-INF/sinf.xml"
)

// obfuscationAlgorithms are the font mangling schemes that do not make
// content documents unreadable.
var obfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true,
	"http://ns.adobe.com/pdf/enc#RC":     true,
}

type encryptionDoc struct {
	XMLName xml.Name `xml:"encryption"`
	Data    []struct {
		Method struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
	} `xml:"EncryptedData"`
}

// inspectEncryption reports whether the archive uses font obfuscation.
// Any other kind of encryption, an unreadable encryption.xml, or the
// FairPlay sinf.xml marker yields ErrDRMProtected.
func inspectEncryption(zr *zip.Reader) (obfuscated bool, err error) {
	if lookupEntry(zr, fairPlayPath) != nil {
		return false, ErrDRMProtected
	}
	f := lookupEntry(zr, encryptionPath)
	if f == nil {
		return false, nil
	}
	data, err := readEntry(f)
	if err != nil {
		return false, err
	}

	var doc encryptionDoc
	if err := xml.Unmarshal(trimBOM(data), &doc); err != nil {
		return false, ErrDRMProtected
	}
	for _, d := range doc.Data {
		if !obfuscationAlgorithms[d.Method.Algorithm] {
			return false, ErrDRMProtected
		}
		obfuscated = true
	}
	return obfuscated, nil
}
