package schema

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
)

// GUID renders 16 bytes in registry format, the first three groups little-endian.
func GUID(raw []byte) string {
	if len(raw) < 16 {
		return "invalid"
	}
	return fmt.Sprintf("{%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X}",
		buf.U32LE(raw[0:4]), buf.U16LE(raw[4:6]), buf.U16LE(raw[6:8]),
		raw[8], raw[9], raw[10], raw[11], raw[12], raw[13], raw[14], raw[15])
}

// UnixTime renders a 32-bit little-endian seconds count as UTC date and time.
func UnixTime(raw []byte) string {
	if len(raw) < 4 {
		return "invalid"
	}
	return FormatTime(buf.U32LE(raw))
}

// FormatTime renders seconds since 1970 as "YYYY-MM-DD hh:mm:ss" in UTC.
func FormatTime(secs uint32) string {
	return time.Unix(int64(secs), 0).UTC().Format("2006-01-02 15:04:05")
}

var (
	decodersMu sync.RWMutex
	decoders   = map[string]DecoderFunc{
		"guid":     GUID,
		"unixtime": UnixTime,
	}
)

// RegisterDecoder makes fn available to profiles under name.
func RegisterDecoder(name string, fn DecoderFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[name] = fn
}

// LookupDecoder returns the decoder registered under name.
func LookupDecoder(name string) (DecoderFunc, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	fn, ok := decoders[name]
	return fn, ok
}

// DecoderNames lists registered decoders in sorted order.
func DecoderNames() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
