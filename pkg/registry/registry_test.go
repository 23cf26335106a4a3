package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

type fakeReader struct {
	root     *document.Node
	cleanups int
}

func (r *fakeReader) Load() error {
	if r.root == nil {
		r.root = document.NewTextNode("Summary", document.IconDocument, "loaded")
	}
	return nil
}
func (r *fakeReader) RootNode() *document.Node { return r.root }
func (r *fakeReader) Cleanup() error {
	r.cleanups++
	return nil
}

type fakeModule struct {
	name     string
	filter   string
	magic    string
	noReader bool
	last     *fakeReader
}

func (m *fakeModule) DisplayName() string { return m.name }
func (m *fakeModule) Icon() document.ModuleIcon { return document.ModuleIconMisc }
func (m *fakeModule) FilterStrings() string { return m.filter }
func (m *fakeModule) IsApplicable(f *view.File) bool {
	b, ok := f.Bytes(0, len(m.magic))
	return ok && string(b) == m.magic
}
func (m *fakeModule) OpenReader(*view.File) document.Reader {
	if m.noReader {
		return nil
	}
	m.last = &fakeReader{}
	return m.last
}

func TestParseFilters(t *testing.T) {
	pairs := ParseFilters("COFF object files (*.obj;*.o)|*.obj;*.o|Libraries (*.lib)|*.lib||")
	require.Len(t, pairs, 2)
	assert.Equal(t, [2]string{"COFF object files (*.obj;*.o)", "*.obj;*.o"}, pairs[0])
	assert.Equal(t, "*.lib", pairs[1][1])

	assert.Empty(t, ParseFilters(""))
	assert.Len(t, ParseFilters("odd|"), 0)
}

func TestMatchesExtension(t *testing.T) {
	filter := "COFF object files (*.obj;*.o)|*.obj;*.o|"
	assert.True(t, MatchesExtension(filter, ".obj"))
	assert.True(t, MatchesExtension(filter, ".OBJ"))
	assert.True(t, MatchesExtension(filter, ".o"))
	assert.False(t, MatchesExtension(filter, ".lib"))
	assert.False(t, MatchesExtension(filter, ""))
	assert.False(t, MatchesExtension(filter, "obj"), "extension includes the dot")
}

func newTestRegistry() (*Registry, *fakeModule, *fakeModule, *fakeModule) {
	first := &fakeModule{name: "first", filter: "First (*.bin)|*.bin|", magic: "AA"}
	second := &fakeModule{name: "second", filter: "Second (*.bin;*.dat)|*.bin;*.dat|", magic: "BB"}
	sniffOnly := &fakeModule{name: "sniff only", filter: "Shared objects (*.so)|*.so|", magic: "CC", noReader: true}
	return New(first, second, sniffOnly), first, second, sniffOnly
}

func TestFindFirstMatchWins(t *testing.T) {
	r, first, second, _ := newTestRegistry()

	m, ok := r.Find(view.FromBytes("x.bin", []byte("AA..")))
	require.True(t, ok)
	assert.Same(t, first, m)

	m, ok = r.Find(view.FromBytes("x.bin", []byte("BB..")))
	require.True(t, ok)
	assert.Same(t, second, m, "content rejected by first falls through to second")

	_, ok = r.Find(view.FromBytes("x.dat", []byte("AA..")))
	assert.False(t, ok, "extension matches only second, which rejects the content")

	_, ok = r.Find(view.FromBytes("x.txt", []byte("AA..")))
	assert.False(t, ok)
}

func TestIsAvailable(t *testing.T) {
	r, _, _, _ := newTestRegistry()
	assert.True(t, r.IsAvailable("c:/temp/file.DAT"))
	assert.True(t, r.IsAvailable("libfoo.so"))
	assert.False(t, r.IsAvailable("notes.txt"))
	assert.False(t, r.IsAvailable("Makefile"))
}

func TestFilterStringsAndRegister(t *testing.T) {
	r, _, _, _ := newTestRegistry()
	assert.Equal(t, "First (*.bin)|*.bin|Second (*.bin;*.dat)|*.bin;*.dat|Shared objects (*.so)|*.so||", r.FilterStrings())

	r.Register(&fakeModule{name: "late", filter: "Late (*.late)|*.late|"})
	assert.Len(t, r.Modules(), 4)
	assert.True(t, r.IsAvailable("a.late"))
}

func TestOpenFileErrors(t *testing.T) {
	r, _, _, _ := newTestRegistry()

	_, err := r.OpenFile(view.FromBytes("x.bin", []byte("ZZ")))
	assert.True(t, errors.Is(err, ErrNoModule))

	_, err = r.OpenFile(view.FromBytes("lib.so", []byte("CC")))
	assert.True(t, errors.Is(err, ErrNoReader))
	assert.False(t, errors.Is(err, ErrNoModule), "no-reader is distinct from no-module")
}

func TestOpenLoadClose(t *testing.T) {
	r, first, _, _ := newTestRegistry()
	path := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(path, []byte("AA payload"), 0o644))

	doc, err := r.Open(path)
	require.NoError(t, err)
	assert.Same(t, first, doc.Module)
	require.NoError(t, doc.Load())
	assert.Equal(t, "loaded", doc.Root().Text())

	require.NoError(t, doc.Close())
	assert.Equal(t, 1, first.last.cleanups)
	assert.Equal(t, 0, doc.File.Size())
}

func TestOpenMissingFile(t *testing.T) {
	r, _, _, _ := newTestRegistry()
	_, err := r.Open(filepath.Join(t.TempDir(), "missing.bin"))
	assert.True(t, os.IsNotExist(err))
}
