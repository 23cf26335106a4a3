package symbols

import (
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// Demangler turns one decorated name into readable text. ok is false when
// the name cannot be undecorated.
type Demangler interface {
	Demangle(name string) (text string, ok bool)
}

// DemanglerFunc adapts a function to Demangler.
type DemanglerFunc func(name string) (string, bool)

func (f DemanglerFunc) Demangle(name string) (string, bool) { return f(name) }

// NewDemangler returns the built-in demangler covering Microsoft C++
// names, Itanium C++ names and stdcall/fastcall decorations.
func NewDemangler() (Demangler, error) {
	return DemanglerFunc(demangleAny), nil
}

func demangleAny(name string) (string, bool) {
	switch {
	case strings.HasPrefix(name, "?"):
		return demangleMSVC(name)
	case isItanium(name):
		return demangleItanium(name)
	case isCallDecorated(name):
		return demangleCall(name)
	}
	return "", false
}

func isItanium(name string) bool {
	return strings.HasPrefix(name, "_Z") || strings.HasPrefix(name, "__Z")
}

func demangleItanium(name string) (string, bool) {
	if strings.HasPrefix(name, "__Z") {
		name = name[1:]
	}
	out, err := demangle.ToString(name)
	if err != nil {
		return "", false
	}
	return out, true
}

// isCallDecorated matches "_name@N" (stdcall) and "@name@N" (fastcall).
func isCallDecorated(name string) bool {
	if len(name) < 4 || (name[0] != '_' && name[0] != '@') {
		return false
	}
	at := strings.LastIndexByte(name, '@')
	if at <= 1 || at == len(name)-1 {
		return false
	}
	for _, c := range name[at+1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return !strings.ContainsAny(name[1:at], "@?")
}

func demangleCall(name string) (string, bool) {
	at := strings.LastIndexByte(name, '@')
	return name[1:at], true
}
