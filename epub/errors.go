package epub

import "errors"

// Sentinel errors returned by the epub package.
var (
	// ErrDRMProtected indicates the ePub file is protected by DRM
	// (Adobe ADEPT, Apple FairPlay, Readium LCP or any unknown scheme).
	// Encrypted content documents cannot be rewritten.
	ErrDRMProtected = errors.New("epub: file is DRM protected")

	// ErrInvalidEPub indicates the file is not a usable ePub
	// (e.g., no container.xml and no .opf file in the archive).
	ErrInvalidEPub = errors.New("epub: invalid ePub file")

	// ErrFileNotFound indicates the requested file does not exist
	// in the ePub archive.
	ErrFileNotFound = errors.New("epub: file not found in archive")

	// ErrDuplicateEntry is returned by Writer when the same archive path
	// is written twice.
	ErrDuplicateEntry = errors.New("epub: duplicate archive entry")
)
