package coff

import "github.com/vividos/ProgrammersGlasses/pkg/view"

// Kind is the result of classifying a file or archive member.
type Kind int

const (
	KindUnknown Kind = iota
	KindObject
	KindNonCoff
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "COFF object"
	case KindNonCoff:
		return "non-COFF object"
	case KindArchive:
		return "archive library"
	}
	return "unknown"
}

// Classify tries the object, non-COFF and archive checks in that order and
// returns the first kind that matches.
func Classify(f *view.File) Kind {
	switch {
	case IsObject(f):
		return KindObject
	case IsNonCoff(f):
		return KindNonCoff
	case IsArchive(f):
		return KindArchive
	}
	return KindUnknown
}

// IsObject reports whether f starts with a plausible COFF header. COFF has
// no signature; the header must fit and its symbol table offset must lie
// inside the file. Headers carrying the import/anonymous object signature
// are never objects.
func IsObject(f *view.File) bool {
	h, err := ParseHeader(f, 0)
	if err != nil {
		return false
	}
	if int64(h.SymbolTableOffset) >= int64(f.Size()) {
		return false
	}
	return !IsNonCoff(f)
}

// IsNonCoff reports whether f starts with an import object or anonymous
// object header.
func IsNonCoff(f *view.File) bool {
	h, err := ParseNonCoffHeader(f, 0)
	return err == nil && h.Valid()
}

// IsArchive reports whether f starts with the "ar" signature.
func IsArchive(f *view.File) bool {
	b, ok := f.Bytes(0, ArchiveSignatureSize)
	return ok && string(b) == ArchiveSignature
}
