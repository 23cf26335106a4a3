package schema

import "fmt"

// Struct is an immutable, named list of fields describing one record type.
type Struct struct {
	name   string
	fields []Field
	size   int
}

// NewStruct validates fields and builds a Struct.
func NewStruct(name string, fields ...Field) (*Struct, error) {
	s := &Struct{name: name, fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("struct %s: %w", name, err)
		}
		s.fields = append(s.fields, f)
		if end := f.End(); end > s.size {
			s.size = end
		}
	}
	return s, nil
}

// MustStruct is NewStruct for package-level definitions; it panics on an
// invalid field.
func MustStruct(name string, fields ...Field) *Struct {
	s, err := NewStruct(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend returns a new Struct holding s's fields followed by fields.
// s itself is not modified.
func (s *Struct) Extend(name string, fields ...Field) (*Struct, error) {
	all := make([]Field, 0, len(s.fields)+len(fields))
	all = append(all, s.fields...)
	all = append(all, fields...)
	return NewStruct(name, all...)
}

// MustExtend is Extend that panics on an invalid field.
func (s *Struct) MustExtend(name string, fields ...Field) *Struct {
	ext, err := s.Extend(name, fields...)
	if err != nil {
		panic(err)
	}
	return ext
}

func (s *Struct) Name() string { return s.name }

// Fields returns a copy of the field list.
func (s *Struct) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Size is the end offset of the furthest field.
func (s *Struct) Size() int { return s.size }

// Source is anything Rows can read bytes from.
type Source interface {
	Bytes(off, n int) ([]byte, bool)
}

type origin interface {
	Origin() int
}

// Row is one decoded field.
type Row struct {
	Offset      int // absolute file offset
	Length      int
	Raw         string
	Value       string
	Description string
}

// OutsideFile is the value of a row whose bytes are not inside the source.
const OutsideFile = "Error: field is outside of the file size"

// Rows decodes every field of s for the record starting at base in src.
func (s *Struct) Rows(src Source, base int) []Row {
	abs := base
	if o, ok := src.(origin); ok {
		abs += o.Origin()
	}
	rows := make([]Row, 0, len(s.fields))
	for _, f := range s.fields {
		row := Row{Offset: abs + f.Offset, Length: f.Length, Description: f.Description}
		raw, ok := src.Bytes(base+f.Offset, f.Length)
		if !ok {
			row.Value = OutsideFile
		} else {
			row.Raw = FormatRaw(raw, f.ValueSize, f.Order)
			row.Value = FormatValue(f, raw)
		}
		rows = append(rows, row)
	}
	return rows
}
