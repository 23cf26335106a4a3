package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Velocidex/yaml"
)

// LoadProfile builds structs from a YAML profile. A profile is a list of
// struct definitions, each written as [name, size, fields], and every
// field as [description, offset, type, options?]:
//
//	- [IMAGE_FILE_HEADER, 20, [
//	    [Machine, 0, value, {length: 2, mapping: {0x14c: i386, 0x8664: amd64}}],
//	    [NumberOfSections, 2, uint16],
//	    [TimeDateStamp, 4, unixtime],
//	  ]]
//
// Types are uint8, uint16, uint32, uint64 (append "be" for big endian),
// bytes, text, utf16, value, flags, bitfield and any registered decoder
// name. A size of 0 skips the size check.
func LoadProfile(data []byte) ([]*Struct, error) {
	var defs []interface{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	structs := make([]*Struct, 0, len(defs))
	for i, def := range defs {
		s, err := parseStructDef(def)
		if err != nil {
			return nil, fmt.Errorf("%w: definition #%d: %v", ErrInvalidProfile, i, err)
		}
		structs = append(structs, s)
	}
	return structs, nil
}

func parseStructDef(def interface{}) (*Struct, error) {
	values, ok := def.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("struct definition should be [name, size, fields]")
	}
	name, ok := values[0].(string)
	if !ok {
		return nil, fmt.Errorf("name should be a string")
	}
	size, ok := toInt(values[1])
	if !ok {
		return nil, fmt.Errorf("%s: size should be an integer", name)
	}
	fieldDefs, ok := values[2].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: fields should be a list of field definitions", name)
	}

	fields := make([]Field, 0, len(fieldDefs))
	for _, fd := range fieldDefs {
		f, err := parseFieldDef(fd)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		fields = append(fields, f)
	}

	s, err := NewStruct(name, fields...)
	if err != nil {
		return nil, err
	}
	if size > 0 && s.Size() > size {
		return nil, fmt.Errorf("%s: fields end at %d, beyond declared size %d", name, s.Size(), size)
	}
	return s, nil
}

func parseFieldDef(fd interface{}) (Field, error) {
	values, ok := fd.([]interface{})
	if !ok || (len(values) != 3 && len(values) != 4) {
		return Field{}, fmt.Errorf("field definition should be [description, offset, type, options?]")
	}
	desc, ok := values[0].(string)
	if !ok {
		return Field{}, fmt.Errorf("field description should be a string")
	}
	offset, ok := toInt(values[1])
	if !ok {
		return Field{}, fmt.Errorf("field %s: offset should be an integer", desc)
	}
	typ, ok := values[2].(string)
	if !ok {
		return Field{}, fmt.Errorf("field %s: type should be a string", desc)
	}
	opts := map[interface{}]interface{}{}
	if len(values) == 4 {
		if opts, ok = values[3].(map[interface{}]interface{}); !ok {
			return Field{}, fmt.Errorf("field %s: options should be a map", desc)
		}
	}

	length, hasLength := optInt(opts, "length")
	need := func(def int) int {
		if hasLength {
			return length
		}
		return def
	}

	var f Field
	switch typ {
	case "uint8", "uint16", "uint32", "uint64", "uint16be", "uint32be", "uint64be":
		bits := strings.TrimSuffix(strings.TrimPrefix(typ, "uint"), "be")
		n := map[string]int{"8": 1, "16": 2, "32": 4, "64": 8}[bits]
		f = Uint(offset, n, desc)
		if strings.HasSuffix(typ, "be") {
			f = f.BigEndian()
		}
	case "bytes":
		valueSize, ok := optInt(opts, "value_size")
		if !ok {
			valueSize = 1
		}
		f = ByteArray(offset, need(0), valueSize, desc)
	case "text":
		f = Text(offset, need(0), 1, desc)
	case "utf16":
		f = Text(offset, need(0), 2, desc)
	case "value", "flags":
		m, err := optMapping(opts, "mapping")
		if err != nil {
			return Field{}, fmt.Errorf("field %s: %v", desc, err)
		}
		if typ == "value" {
			f = Value(offset, need(4), m, desc)
			if def, ok := opts["default"].(string); ok {
				f = f.WithDefault(def)
			}
		} else {
			f = Flags(offset, need(4), m, desc)
		}
	case "bitfield":
		bfs, err := optBitfields(opts)
		if err != nil {
			return Field{}, fmt.Errorf("field %s: %v", desc, err)
		}
		f = Bits(offset, need(4), bfs, desc)
	default:
		fn, ok := LookupDecoder(typ)
		if !ok {
			return Field{}, fmt.Errorf("field %s: unknown type %q", desc, typ)
		}
		def := 4
		if typ == "guid" {
			def = 16
		}
		f = Custom(offset, need(def), 1, typ, fn, desc)
	}

	if endian, ok := opts["endian"].(string); ok {
		switch endian {
		case "big":
			f.Order = BigEndian
		case "little":
			f.Order = LittleEndian
		default:
			return Field{}, fmt.Errorf("field %s: endian should be big or little", desc)
		}
	}
	return f, nil
}

func toInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	}
	return 0, false
}

func optInt(opts map[interface{}]interface{}, key string) (int, bool) {
	v, ok := opts[key]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

func optMapping(opts map[interface{}]interface{}, key string) (Mapping, error) {
	raw, ok := opts[key]
	if !ok {
		return nil, fmt.Errorf("missing %s", key)
	}
	dict, ok := raw.(map[interface{}]interface{})
	if !ok {
		return nil, fmt.Errorf("%s should be a map", key)
	}
	m := make(Mapping, len(dict))
	for k, v := range dict {
		n, ok := toInt(k)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%s key %v should be a non-negative integer", key, k)
		}
		m[uint32(n)] = fmt.Sprint(v)
	}
	return m, nil
}

func optBitfields(opts map[interface{}]interface{}) ([]Bitfield, error) {
	list, ok := opts["bitfields"].([]interface{})
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("bitfields should be a non-empty list")
	}
	out := make([]Bitfield, 0, len(list))
	for i, item := range list {
		d, ok := item.(map[interface{}]interface{})
		if !ok {
			return nil, fmt.Errorf("bitfield #%d should be a map", i)
		}
		start, ok1 := optInt(d, "start")
		count, ok2 := optInt(d, "count")
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("bitfield #%d needs start and count", i)
		}
		bf := Bitfield{StartBit: start, BitCount: count, Kind: KindUnsigned}
		if kindName, ok := d["kind"].(string); ok {
			k, ok := ParseKind(kindName)
			if !ok {
				return nil, fmt.Errorf("bitfield #%d: unknown kind %q", i, kindName)
			}
			bf.Kind = k
		}
		if _, ok := d["mapping"]; ok {
			m, err := optMapping(d, "mapping")
			if err != nil {
				return nil, fmt.Errorf("bitfield #%d: %v", i, err)
			}
			bf.Mapping = m
		}
		out = append(out, bf)
	}
	return out, nil
}

// Describe renders s as YAML, fields in declaration order.
func Describe(s *Struct) ([]byte, error) {
	fields := make([]yaml.MapSlice, 0, len(s.fields))
	for _, f := range s.fields {
		item := yaml.MapSlice{
			{Key: "description", Value: f.Description},
			{Key: "offset", Value: f.Offset},
			{Key: "length", Value: f.Length},
			{Key: "value_size", Value: f.ValueSize},
			{Key: "endian", Value: f.Order.String()},
			{Key: "kind", Value: f.Kind.String()},
		}
		if f.Mapping != nil {
			item = append(item, yaml.MapItem{Key: "mapping", Value: describeMapping(f.Mapping)})
		}
		if f.Default != "" {
			item = append(item, yaml.MapItem{Key: "default", Value: f.Default})
		}
		if len(f.Bitfields) > 0 {
			bfs := make([]yaml.MapSlice, 0, len(f.Bitfields))
			for _, bf := range f.Bitfields {
				b := yaml.MapSlice{
					{Key: "start", Value: bf.StartBit},
					{Key: "count", Value: bf.BitCount},
					{Key: "kind", Value: bf.Kind.String()},
				}
				if bf.Mapping != nil {
					b = append(b, yaml.MapItem{Key: "mapping", Value: describeMapping(bf.Mapping)})
				}
				bfs = append(bfs, b)
			}
			item = append(item, yaml.MapItem{Key: "bitfields", Value: bfs})
		}
		if f.Kind == KindCustom {
			item = append(item, yaml.MapItem{Key: "decoder", Value: f.DecoderName})
		}
		fields = append(fields, item)
	}

	return yaml.Marshal(yaml.MapSlice{
		{Key: "name", Value: s.Name()},
		{Key: "size", Value: s.Size()},
		{Key: "fields", Value: fields},
	})
}

func describeMapping(m Mapping) yaml.MapSlice {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make(yaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		out = append(out, yaml.MapItem{Key: fmt.Sprintf("0x%x", k), Value: m[k]})
	}
	return out
}
