package coff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/internal/testutil"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

func buildArchive(t *testing.T, data []byte) *Archive {
	t.Helper()
	return BuildArchive(view.FromBytes("lib.lib", data), testOptions().Options)
}

func TestBuildArchiveImportLibrary(t *testing.T) {
	arc := buildArchive(t, testutil.LibraryArchive())

	assert.Equal(t, "Library Summary", arc.Root.Name)
	assert.Equal(t, []string{
		"Archive header",
		"Library members",
		"Archive member /",
		"Archive member /",
		"Archive member //",
		"Archive member bar.obj",
	}, childNames(arc.Root))

	members := tableOf(t, arc.Root.Child("Library members"))
	assert.Equal(t, [][]string{
		{"0", "/", "0x00000008", "12", MemberFirstLinker},
		{"1", "/", "0x00000050", "18", MemberSecondLinker},
		{"2", "//", "0x0000009e", "8", MemberLongnames},
		{"3", "bar.obj", "0x000000e2", "42", MemberObject},
	}, members.Rows)

	assert.Equal(t, "Archive library: lib.lib\n\n"+
		"First linker member with 1 symbols\n"+
		"Second linker member with 1 members and 1 symbols\n"+
		"Longnames member with 1 names\n"+
		"bar.obj: COFF object, IMAGE_FILE_MACHINE_AMD64 (x64)\n"+
		"Number of members: 4\n", arc.Root.Text())

	require.Len(t, arc.Members, 4)
	assert.Equal(t, 0xe2+60, arc.Members[3].DataOffset())
}

func TestBuildArchiveLinkerMembers(t *testing.T) {
	arc := buildArchive(t, testutil.LibraryArchive())
	nodes := arc.Root.Children()

	first := nodes[2]
	assert.Equal(t, []string{"Archive member header", MemberFirstLinker}, childNames(first))
	assert.Equal(t, [][]string{{"0", "0x000000e2", "foo", "foo"}}, tableOf(t, first.Child(MemberFirstLinker)).Rows)

	second := nodes[3]
	assert.Equal(t, [][]string{{"0", "1", "0x000000e2", "foo", "foo"}}, tableOf(t, second.Child(MemberSecondLinker)).Rows)

	longnames := nodes[4]
	assert.Equal(t, [][]string{{"0", "0x00000000", "bar.obj"}}, tableOf(t, longnames.Child(MemberLongnames)).Rows)

	hdr := first.Child("Archive member header").Content().(*document.StructContent)
	rows := hdr.Rows()
	assert.Equal(t, 8, rows[0].Offset)
	assert.Equal(t, "/", rows[0].Value[:1])
}

func TestBuildArchiveNestedObject(t *testing.T) {
	arc := buildArchive(t, testutil.LibraryArchive())

	member := arc.Root.Child("Archive member bar.obj")
	require.NotNil(t, member)
	assert.Equal(t, document.IconObject, member.Icon)
	assert.Equal(t, []string{"Archive member header", "COFF Summary"}, childNames(member))

	object := member.Child("COFF Summary")
	assert.Contains(t, object.Text(), "COFF file: lib.lib at offset 0x0000011e\n")
	assert.Equal(t, [][]string{{"0", "foo", "foo"}}, tableOf(t, object.Child("Symbol Table")).Rows)

	rows := object.Child("COFF header").Content().(*document.StructContent).Rows()
	assert.Equal(t, 0x11e, rows[0].Offset)
}

func TestBuildArchiveLongnameReference(t *testing.T) {
	imp := testutil.ImportObject{Machine: 0x14c, Symbol: "foo", DLL: "foo.dll"}.Bytes()
	data := testutil.Archive(
		testutil.Member{Name: "a/", Data: []byte("xy")},
		testutil.Member{Name: "b/", Data: []byte("xy")},
		testutil.Member{Name: "//", Data: testutil.Longnames("first_long_name.obj", "second_long_name.obj")},
		testutil.Member{Name: "/20", Data: imp},
	)
	arc := buildArchive(t, data)

	require.Len(t, arc.Members, 4)
	assert.Equal(t, MemberLongnames, arc.Members[2].Kind)
	assert.Equal(t, "second_long_name.obj", arc.Members[3].Name)
	assert.Equal(t, MemberImport, arc.Members[3].Kind)
	assert.Contains(t, arc.Summary, "second_long_name.obj: Import object, IMAGE_FILE_MACHINE_I386 "+
		"(Intel 386 or later processors and compatible processors), foo from foo.dll\n")
	assert.NotNil(t, arc.Root.Child("Archive member second_long_name.obj").Child("non-COFF Summary"))
}

func TestBuildArchiveSpecialNamesByPosition(t *testing.T) {
	object := testutil.Object{Machine: 0x14c}.Bytes()

	tests := []struct {
		name     string
		members  []testutil.Member
		index    int
		wantName string
		wantKind string
	}{
		{
			name:     "longnames name at first position is an object",
			members:  []testutil.Member{{Name: "//", Data: object}},
			index:    0,
			wantName: "//",
			wantKind: MemberObject,
		},
		{
			name: "longnames name at second position is an object",
			members: []testutil.Member{
				{Name: "a.obj/", Data: object},
				{Name: "//", Data: object},
			},
			index:    1,
			wantName: "//",
			wantKind: MemberObject,
		},
		{
			name: "slash past the linker members keeps its name",
			members: []testutil.Member{
				{Name: "a.obj/", Data: object},
				{Name: "b.obj/", Data: object},
				{Name: "/", Data: object},
			},
			index:    2,
			wantName: "/",
			wantKind: MemberObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc := buildArchive(t, testutil.Archive(tt.members...))
			require.Len(t, arc.Members, len(tt.members))
			m := arc.Members[tt.index]
			assert.Equal(t, tt.wantName, m.Name)
			assert.Equal(t, tt.wantKind, m.Kind)
			assert.NotNil(t, arc.Root.Child("Archive member "+tt.wantName))
		})
	}
}

func TestBuildArchiveUnresolvedLongname(t *testing.T) {
	data := testutil.Archive(testutil.Member{Name: "/99", Data: []byte("xy")})
	arc := buildArchive(t, data)
	require.Len(t, arc.Members, 1)
	assert.Equal(t, "/99", arc.Members[0].Name)
	assert.Equal(t, MemberUnknown, arc.Members[0].Kind)
}

func TestBuildArchiveAlignment(t *testing.T) {
	sizes := []int{3, 5, 1, 4, 7}
	var members []testutil.Member
	for i, size := range sizes {
		members = append(members, testutil.Member{Name: string(rune('a'+i)) + "/", Data: make([]byte, size)})
	}
	arc := buildArchive(t, testutil.Archive(members...))

	require.Len(t, arc.Members, len(sizes))
	for i, want := range testutil.MemberOffsets(sizes...) {
		assert.Equal(t, want, arc.Members[i].Offset, "member %d", i)
		assert.Zero(t, arc.Members[i].Offset%2)
		assert.Equal(t, MemberUnknown, arc.Members[i].Kind)
	}
	assert.NotContains(t, arc.Summary, "garbage")
}

func TestBuildArchiveEmptyMember(t *testing.T) {
	arc := buildArchive(t, testutil.Archive(testutil.Member{Name: "e/"}))

	require.Len(t, arc.Members, 1)
	assert.Equal(t, MemberUnknown, arc.Members[0].Kind)
	assert.Contains(t, arc.Summary, "e: empty member\n")
	content := arc.Root.Child("Archive member e").Child("Member content")
	assert.Equal(t, "Warning: Archive member is empty\n", content.Text())
}

func TestBuildArchiveNeverNested(t *testing.T) {
	inner := testutil.Archive(testutil.Member{Name: "x/", Data: []byte("ab")})
	arc := buildArchive(t, testutil.Archive(testutil.Member{Name: "inner.a/", Data: inner}))

	require.Len(t, arc.Members, 1)
	assert.Equal(t, MemberUnknown, arc.Members[0].Kind)
	assert.Contains(t, arc.Root.Child("Archive member inner.a").Child("Member content").Text(),
		"neither a COFF object nor an import object")
}

func TestBuildArchiveStopConditions(t *testing.T) {
	object := testutil.Object{Machine: 0x14c}.Bytes()

	t.Run("garbage", func(t *testing.T) {
		data := append(testutil.Archive(testutil.Member{Name: "a.obj/", Data: object}), "0123456789"...)
		arc := buildArchive(t, data)
		assert.Len(t, arc.Members, 1)
		assert.Contains(t, arc.Summary, "Warning: 10 bytes of garbage after the last archive member\n")
		assert.Contains(t, arc.Summary, "Number of members: 1\n")
	})

	t.Run("end marker", func(t *testing.T) {
		data := testutil.Archive(testutil.Member{Name: "a.obj/", Data: object})
		data[8+58] = 'x'
		arc := buildArchive(t, data)
		assert.Empty(t, arc.Members)
		assert.Contains(t, arc.Summary, "Error: Archive member #0 has an invalid end of header marker\n")
	})

	t.Run("size", func(t *testing.T) {
		data := testutil.Archive(testutil.Member{Name: "a.obj/", Data: object})
		copy(data[8+48:], "abc")
		arc := buildArchive(t, data)
		assert.Empty(t, arc.Members)
		assert.Contains(t, arc.Summary, "Error: Archive member #0 has an invalid size\n")
	})

	t.Run("outside", func(t *testing.T) {
		data := append([]byte(ArchiveSignature), testutil.MemberHeader("a.obj/", 1000)...)
		data = append(data, object...)
		arc := buildArchive(t, data)
		assert.Empty(t, arc.Members)
		assert.Contains(t, arc.Summary, "Error: Archive member #0 is outside of the file size!\n")
	})

	t.Run("second member broken", func(t *testing.T) {
		data := testutil.Archive(
			testutil.Member{Name: "a.obj/", Data: object},
			testutil.Member{Name: "b.obj/", Data: object},
		)
		second := testutil.MemberOffsets(len(object), len(object))[1]
		data[second+59] = 'x'
		arc := buildArchive(t, data)
		assert.Len(t, arc.Members, 1)
		assert.Contains(t, arc.Summary, "Error: Archive member #1 has an invalid end of header marker\n")
	})
}

func TestBuildArchiveSignatureOnly(t *testing.T) {
	arc := buildArchive(t, []byte(ArchiveSignature))
	assert.Empty(t, arc.Members)
	assert.Empty(t, tableOf(t, arc.Root.Child("Library members")).Rows)
	assert.Equal(t, "Archive library: lib.lib\n\nNumber of members: 0\n", arc.Summary)
}
