package symbols

import (
	"errors"
	"strings"
)

var errMalformed = errors.New("malformed decorated name")

// demangleMSVC undecorates a Microsoft C++ name ("?name@scope@@...") into
// the form the platform's undecorator prints, e.g.
//
//	?bar@Foo@@QAEXH@Z  ->  public: void __thiscall Foo::bar(int)
func demangleMSVC(name string) (string, bool) {
	if len(name) < 2 || name[0] != '?' {
		return "", false
	}
	d := &msvcDemangler{in: name, pos: 1}
	out, err := d.symbol()
	if err != nil || d.pos != len(d.in) {
		return "", false
	}
	return out, true
}

type msvcDemangler struct {
	in    string
	pos   int
	names []string // name back-references 0-9
	types []string // argument back-references 0-9
}

func (d *msvcDemangler) peek() byte {
	if d.pos >= len(d.in) {
		return 0
	}
	return d.in[d.pos]
}

func (d *msvcDemangler) next() (byte, error) {
	if d.pos >= len(d.in) {
		return 0, errMalformed
	}
	c := d.in[d.pos]
	d.pos++
	return c, nil
}

func (d *msvcDemangler) consume(s string) bool {
	if strings.HasPrefix(d.in[d.pos:], s) {
		d.pos += len(s)
		return true
	}
	return false
}

func (d *msvcDemangler) symbol() (string, error) {
	special, err := d.unqualifiedName(true)
	if err != nil {
		return "", err
	}
	scope, err := d.scope()
	if err != nil {
		return "", err
	}

	full := special.text
	if len(scope) > 0 {
		full = strings.Join(scope, "::") + "::" + full
	}
	switch special.kind {
	case nameCtor:
		full = strings.Join(scope, "::") + "::" + lastPart(scope)
	case nameDtor:
		full = strings.Join(scope, "::") + "::~" + lastPart(scope)
	}

	if d.pos >= len(d.in) {
		return full, nil
	}
	return d.encoding(full)
}

func lastPart(scope []string) string {
	if len(scope) == 0 {
		return ""
	}
	last := scope[len(scope)-1]
	if i := strings.IndexByte(last, '<'); i > 0 {
		return last[:i]
	}
	return last
}

type nameKind int

const (
	namePlain nameKind = iota
	nameCtor
	nameDtor
	nameOperator
)

type unqualified struct {
	kind nameKind
	text string
}

// unqualifiedName reads the innermost name fragment. Special names
// (constructors, destructors, operators) are only allowed first.
func (d *msvcDemangler) unqualifiedName(first bool) (unqualified, error) {
	if d.consume("?$") {
		t, err := d.template()
		return unqualified{text: t}, err
	}
	if first && d.peek() == '?' {
		d.pos++
		return d.specialName()
	}
	s, err := d.simpleName()
	return unqualified{text: s}, err
}

func (d *msvcDemangler) simpleName() (string, error) {
	c := d.peek()
	if c >= '0' && c <= '9' {
		d.pos++
		i := int(c - '0')
		if i >= len(d.names) {
			return "", errMalformed
		}
		return d.names[i], nil
	}
	end := strings.IndexByte(d.in[d.pos:], '@')
	if end <= 0 {
		return "", errMalformed
	}
	s := d.in[d.pos : d.pos+end]
	d.pos += end + 1
	d.remember(s)
	return s, nil
}

func (d *msvcDemangler) remember(s string) {
	for _, n := range d.names {
		if n == s {
			return
		}
	}
	if len(d.names) < 10 {
		d.names = append(d.names, s)
	}
}

var operators = map[byte]string{
	'2': "operator new", '3': "operator delete", '4': "operator=",
	'5': "operator>>", '6': "operator<<", '7': "operator!", '8': "operator==",
	'9': "operator!=", 'A': "operator[]", 'C': "operator->", 'D': "operator*",
	'E': "operator++", 'F': "operator--", 'G': "operator-", 'H': "operator+",
	'I': "operator&", 'J': "operator->*", 'K': "operator/", 'L': "operator%",
	'M': "operator<", 'N': "operator<=", 'O': "operator>", 'P': "operator>=",
	'Q': "operator,", 'R': "operator()", 'S': "operator~", 'T': "operator^",
	'U': "operator|", 'V': "operator&&", 'W': "operator||", 'X': "operator*=",
	'Y': "operator+=", 'Z': "operator-=",
}

var underscoreOperators = map[byte]string{
	'0': "operator/=", '1': "operator%=", '2': "operator>>=", '3': "operator<<=",
	'4': "operator&=", '5': "operator|=", '6': "operator^=",
	'7': "`vftable'", '8': "`vbtable'", '9': "`vcall'",
	'E': "`vector deleting destructor'", 'G': "`scalar deleting destructor'",
	'U': "operator new[]", 'V': "operator delete[]",
}

func (d *msvcDemangler) specialName() (unqualified, error) {
	c, err := d.next()
	if err != nil {
		return unqualified{}, err
	}
	switch c {
	case '0':
		return unqualified{kind: nameCtor}, nil
	case '1':
		return unqualified{kind: nameDtor}, nil
	case 'B':
		return unqualified{kind: nameOperator, text: "operator cast"}, nil
	case '_':
		c2, err := d.next()
		if err != nil {
			return unqualified{}, err
		}
		if op, ok := underscoreOperators[c2]; ok {
			return unqualified{kind: nameOperator, text: op}, nil
		}
		return unqualified{}, errMalformed
	}
	if op, ok := operators[c]; ok {
		return unqualified{kind: nameOperator, text: op}, nil
	}
	return unqualified{}, errMalformed
}

// template reads "name@args@" after "?$". Template arguments use their own
// back-reference tables.
func (d *msvcDemangler) template() (string, error) {
	outerNames, outerTypes := d.names, d.types
	d.names, d.types = nil, nil

	name, err := d.simpleName()
	if err != nil {
		return "", err
	}
	var args []string
	for d.peek() != '@' {
		if d.pos >= len(d.in) {
			return "", errMalformed
		}
		if d.consume("$0") {
			n, err := d.number()
			if err != nil {
				return "", err
			}
			args = append(args, n)
			continue
		}
		t, err := d.typ()
		if err != nil {
			return "", err
		}
		args = append(args, t)
	}
	d.pos++

	d.names, d.types = outerNames, outerTypes
	closing := ">"
	if len(args) > 0 && strings.HasSuffix(args[len(args)-1], ">") {
		closing = " >"
	}
	full := name + "<" + strings.Join(args, ",") + closing
	d.remember(full)
	return full, nil
}

// number reads an encoded integer: 0-9 means 1-10, hex digits A-P
// terminated by '@' otherwise, with an optional leading '?' for negative.
func (d *msvcDemangler) number() (string, error) {
	neg := d.consume("?")
	c := d.peek()
	var v uint64
	switch {
	case c >= '0' && c <= '9':
		d.pos++
		v = uint64(c-'0') + 1
	default:
		for {
			c, err := d.next()
			if err != nil {
				return "", err
			}
			if c == '@' {
				break
			}
			if c < 'A' || c > 'P' {
				return "", errMalformed
			}
			v = v<<4 | uint64(c-'A')
		}
	}
	s := uitoa(v)
	if neg {
		s = "-" + s
	}
	return s, nil
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}

// scope reads the enclosing namespaces and classes up to the closing '@'
// and returns them outermost first.
func (d *msvcDemangler) scope() ([]string, error) {
	var parts []string
	for {
		if d.pos >= len(d.in) {
			return nil, errMalformed
		}
		if d.peek() == '@' {
			d.pos++
			break
		}
		u, err := d.unqualifiedName(false)
		if err != nil {
			return nil, err
		}
		parts = append(parts, u.text)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts, nil
}

func (d *msvcDemangler) qualifiedName() (string, error) {
	u, err := d.unqualifiedName(false)
	if err != nil {
		return "", err
	}
	scope, err := d.scope()
	if err != nil {
		return "", err
	}
	return strings.Join(append(scope, u.text), "::"), nil
}

type access struct {
	prefix   string
	member   bool // has a this-pointer qualifier
	function bool
}

var accessCodes = map[byte]access{
	'A': {"private: ", true, true}, 'B': {"private: ", true, true},
	'C': {"private: static ", false, true}, 'D': {"private: static ", false, true},
	'E': {"private: virtual ", true, true}, 'F': {"private: virtual ", true, true},
	'I': {"protected: ", true, true}, 'J': {"protected: ", true, true},
	'K': {"protected: static ", false, true}, 'L': {"protected: static ", false, true},
	'M': {"protected: virtual ", true, true}, 'N': {"protected: virtual ", true, true},
	'Q': {"public: ", true, true}, 'R': {"public: ", true, true},
	'S': {"public: static ", false, true}, 'T': {"public: static ", false, true},
	'U': {"public: virtual ", true, true}, 'V': {"public: virtual ", true, true},
	'Y': {"", false, true}, 'Z': {"", false, true},
	'0': {"private: static ", false, false},
	'1': {"protected: static ", false, false},
	'2': {"public: static ", false, false},
	'3': {"", false, false},
	'4': {"", false, false},
}

var callingConventions = map[byte]string{
	'A': "__cdecl", 'B': "__cdecl",
	'C': "__pascal", 'D': "__pascal",
	'E': "__thiscall", 'F': "__thiscall",
	'G': "__stdcall", 'H': "__stdcall",
	'I': "__fastcall", 'J': "__fastcall",
	'M': "__clrcall", 'Q': "__vectorcall",
}

func (d *msvcDemangler) encoding(name string) (string, error) {
	c, err := d.next()
	if err != nil {
		return "", err
	}
	acc, ok := accessCodes[c]
	if !ok {
		return "", errMalformed
	}

	if !acc.function {
		t, err := d.typ()
		if err != nil {
			return "", err
		}
		cv, err := d.storage()
		if err != nil {
			return "", err
		}
		return acc.prefix + joinNonEmpty(t, cv) + " " + name, nil
	}

	thisCV := ""
	if acc.member {
		d.consume("E") // __ptr64
		if thisCV, err = d.storage(); err != nil {
			return "", err
		}
	}
	cc, err := d.next()
	if err != nil {
		return "", err
	}
	conv, ok := callingConventions[cc]
	if !ok {
		return "", errMalformed
	}

	ret := ""
	if !d.consume("@") {
		d.consume("?A")
		if ret, err = d.typ(); err != nil {
			return "", err
		}
	}
	args, err := d.arguments()
	if err != nil {
		return "", err
	}
	if !d.consume("Z") {
		// throw specification other than none is not rendered
		if _, err := d.arguments(); err != nil {
			return "", err
		}
	}

	out := acc.prefix
	if ret != "" {
		out += ret + " "
	}
	out += conv + " " + name + "(" + args + ")"
	if thisCV != "" {
		out += thisCV
	}
	return out, nil
}

// storage reads a storage-class letter and returns its qualifier text.
func (d *msvcDemangler) storage() (string, error) {
	c, err := d.next()
	if err != nil {
		return "", err
	}
	switch c {
	case 'A':
		return "", nil
	case 'B':
		return "const", nil
	case 'C':
		return "volatile", nil
	case 'D':
		return "const volatile", nil
	}
	return "", errMalformed
}

func joinNonEmpty(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}

func (d *msvcDemangler) arguments() (string, error) {
	if d.consume("X") {
		return "void", nil
	}
	var args []string
	for {
		switch {
		case d.pos >= len(d.in):
			return "", errMalformed
		case d.consume("@"):
			return strings.Join(args, ","), nil
		case d.peek() == 'Z':
			d.pos++
			return strings.Join(append(args, "..."), ","), nil
		}
		c := d.peek()
		if c >= '0' && c <= '9' {
			d.pos++
			i := int(c - '0')
			if i >= len(d.types) {
				return "", errMalformed
			}
			args = append(args, d.types[i])
			continue
		}
		start := d.pos
		t, err := d.typ()
		if err != nil {
			return "", err
		}
		if d.pos-start > 1 && len(d.types) < 10 {
			d.types = append(d.types, t)
		}
		args = append(args, t)
	}
}

var primitives = map[byte]string{
	'X': "void", 'C': "signed char", 'D': "char", 'E': "unsigned char",
	'F': "short", 'G': "unsigned short", 'H': "int", 'I': "unsigned int",
	'J': "long", 'K': "unsigned long", 'M': "float", 'N': "double",
	'O': "long double",
}

var extendedPrimitives = map[byte]string{
	'J': "__int64", 'K': "unsigned __int64", 'N': "bool", 'W': "wchar_t",
	'S': "char16_t", 'U': "char32_t", 'D': "__int8", 'E': "unsigned __int8",
	'F': "__int16", 'G': "unsigned __int16", 'H': "__int32", 'I': "unsigned __int32",
}

func (d *msvcDemangler) typ() (string, error) {
	c, err := d.next()
	if err != nil {
		return "", err
	}
	if p, ok := primitives[c]; ok {
		return p, nil
	}
	switch c {
	case '_':
		c2, err := d.next()
		if err != nil {
			return "", err
		}
		if p, ok := extendedPrimitives[c2]; ok {
			return p, nil
		}
	case 'T', 'U', 'V':
		n, err := d.qualifiedName()
		if err != nil {
			return "", err
		}
		return map[byte]string{'T': "union ", 'U': "struct ", 'V': "class "}[c] + n, nil
	case 'W':
		if _, err := d.next(); err != nil { // underlying type
			return "", err
		}
		n, err := d.qualifiedName()
		if err != nil {
			return "", err
		}
		return "enum " + n, nil
	case 'P', 'Q', 'R', 'S':
		return d.indirect("*", map[byte]string{'Q': "const", 'R': "volatile", 'S': "const volatile"}[c])
	case 'A', 'B':
		return d.indirect("&", map[byte]string{'B': "volatile"}[c])
	case '$':
		if d.consume("$Q") {
			return d.indirect("&&", "")
		}
		if d.consume("$A") {
			return d.indirect("&&", "")
		}
		if d.consume("$T") {
			return "std::nullptr_t", nil
		}
	}
	return "", errMalformed
}

// indirect reads the pointee of a pointer or reference and renders
// "<pointee> <cv><op>[ <self cv>]".
func (d *msvcDemangler) indirect(op, selfCV string) (string, error) {
	d.consume("E") // __ptr64
	if d.peek() == '6' {
		return "", errMalformed // function pointers are not rendered
	}
	cv, err := d.storage()
	if err != nil {
		return "", err
	}
	inner, err := d.typ()
	if err != nil {
		return "", err
	}
	out := inner + " "
	if cv != "" {
		out += cv + " "
	}
	out += op
	if selfCV != "" {
		out += " " + selfCV
	}
	return out, nil
}
