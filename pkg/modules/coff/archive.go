package coff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Member kinds shown in the library members table.
const (
	MemberFirstLinker  = "First linker member"
	MemberSecondLinker = "Second linker member"
	MemberLongnames    = "Longnames member"
	MemberObject       = "COFF object"
	MemberImport       = "Import object"
	MemberAnonymous    = "Anonymous object"
	MemberUnknown      = "Unknown"
)

// Member describes one archive member.
type Member struct {
	Index int
	// Offset is the offset of the member header.
	Offset int
	Header MemberHeader
	// Name is the member name with longnames references resolved.
	Name string
	Kind string
}

// DataOffset returns the offset of the member content.
func (m Member) DataOffset() int { return m.Offset + MemberHeaderSize }

// Archive is a built archive library tree.
type Archive struct {
	Root    *document.Node
	Members []Member
	Summary string
}

var (
	memberColumns       = []string{"Index", "Name", "Offset", "Size", "Kind"}
	firstLinkerColumns  = []string{"Index", "Member offset", "Symbol", "Undecorated symbol"}
	secondLinkerColumns = []string{"Index", "Member index", "Member offset", "Symbol", "Undecorated symbol"}
	longnamesColumns    = []string{"Index", "Offset", "Name"}
)

type archiveBuilder struct {
	f         *view.File
	opts      Options
	summary   strings.Builder
	members   *document.TableContent
	longnames Longnames
}

// BuildArchive builds the node tree of the "ar" library in f. Member
// content is decoded through windows of f, so nested objects report
// absolute file offsets.
func BuildArchive(f *view.File, opts Options) *Archive {
	b := &archiveBuilder{
		f:       f,
		opts:    opts,
		members: &document.TableContent{Columns: memberColumns, Sortable: true},
	}
	return b.build()
}

func (b *archiveBuilder) build() *Archive {
	root := document.NewNode("Library Summary", document.IconLibrary, nil)
	arc := &Archive{Root: root}

	fmt.Fprintf(&b.summary, "Archive library: %s\n\n", b.f.BaseName())
	root.AddChild(document.NewStructNode("Archive header", document.IconBinary, ArchiveHeaderSchema, b.f, 0))
	root.AddChild(document.NewTableNode("Library members", document.IconTable, b.members))

	off := ArchiveSignatureSize
	for index := 0; off < b.f.Size(); index++ {
		if !b.f.IsValidRange(off, MemberHeaderSize) {
			fmt.Fprintf(&b.summary, "Warning: %d bytes of garbage after the last archive member\n", b.f.Size()-off)
			break
		}
		hdr, err := ParseMemberHeader(b.f, off)
		if err != nil {
			logger.Warn("archive walk stopped", "file", b.f.Name(), "member", index, "offset", off, "error", err)
			if errors.Is(err, ErrSignatureMismatch) {
				fmt.Fprintf(&b.summary, "Error: Archive member #%d has an invalid end of header marker\n", index)
			} else {
				fmt.Fprintf(&b.summary, "Error: Archive member #%d has an invalid size\n", index)
			}
			break
		}
		m := Member{Index: index, Offset: off, Header: hdr, Name: hdr.Name}
		if hdr.Size > 0 && !b.f.IsValidRange(m.DataOffset(), hdr.Size) {
			fmt.Fprintf(&b.summary, "Error: Archive member #%d is outside of the file size!\n", index)
			break
		}

		root.AddChild(b.member(&m))
		arc.Members = append(arc.Members, m)
		b.members.AddRow(strconv.Itoa(index), m.Name, fmt.Sprintf("0x%08x", off), strconv.Itoa(hdr.Size), m.Kind)

		end, ok := buf.AddOverflowSafe(m.DataOffset(), hdr.Size)
		if !ok {
			break
		}
		off = buf.AlignUp(end, memberAlignment)
	}

	fmt.Fprintf(&b.summary, "Number of members: %d\n", len(arc.Members))
	arc.Summary = b.summary.String()
	root.SetText(arc.Summary)
	return arc
}

// content returns the member's bytes; empty members yield nil.
func (b *archiveBuilder) content(m *Member) []byte {
	data, _ := b.f.Bytes(m.DataOffset(), m.Header.Size)
	return data
}

func (b *archiveBuilder) member(m *Member) *document.Node {
	name := m.Header.Name
	var content *document.Node
	switch {
	case m.Index == 0 && name == linkerMemberName:
		m.Kind = MemberFirstLinker
		content = b.firstLinker(m)
	case m.Index == 1 && name == linkerMemberName:
		m.Kind = MemberSecondLinker
		content = b.secondLinker(m)
	case m.Index >= 2 && name == longnamesMemberName:
		m.Kind = MemberLongnames
		content = b.longnamesMember(m)
	default:
		m.Name = b.resolveName(name)
		content = b.object(m)
	}

	node := document.NewNode("Archive member "+m.Name, document.IconObject, nil)
	node.AddChild(document.NewStructNode("Archive member header", document.IconBinary, MemberHeaderSchema, b.f, m.Offset))
	node.AddChild(content)
	return node
}

// resolveName turns "/<offset>" into the longnames entry and drops the
// trailing "/" of short names.
func (b *archiveBuilder) resolveName(name string) string {
	if len(name) > 1 && name[0] == '/' {
		if off, err := strconv.Atoi(name[1:]); err == nil {
			if long, ok := b.longnames.At(off); ok {
				return long
			}
		}
		return name
	}
	if trimmed := strings.TrimSuffix(name, "/"); trimmed != "" {
		return trimmed
	}
	return name
}

func (b *archiveBuilder) firstLinker(m *Member) *document.Node {
	l := ParseFirstLinker(b.content(m))
	table := &document.TableContent{Columns: firstLinkerColumns, Sortable: true}
	res := b.opts.resolver()
	for i, name := range l.Names {
		table.AddRow(strconv.Itoa(i), fmt.Sprintf("0x%08x", l.Offsets[i]), name, res.Undecorate(name))
	}
	fmt.Fprintf(&b.summary, "First linker member with %d symbols\n", len(l.Names))
	if l.Truncated {
		b.summary.WriteString("Warning: First linker member is truncated\n")
	}
	return document.NewTableNode(MemberFirstLinker, document.IconTable, table)
}

func (b *archiveBuilder) secondLinker(m *Member) *document.Node {
	l := ParseSecondLinker(b.content(m))
	table := &document.TableContent{Columns: secondLinkerColumns, Sortable: true}
	res := b.opts.resolver()
	for i, name := range l.Names {
		idx := l.Indices[i]
		offText := "invalid"
		if off, ok := l.MemberOffset(idx); ok {
			offText = fmt.Sprintf("0x%08x", off)
		}
		table.AddRow(strconv.Itoa(i), strconv.Itoa(int(idx)), offText, name, res.Undecorate(name))
	}
	fmt.Fprintf(&b.summary, "Second linker member with %d members and %d symbols\n",
		len(l.MemberOffsets), len(l.Names))
	if l.Truncated {
		b.summary.WriteString("Warning: Second linker member is truncated\n")
	}
	return document.NewTableNode(MemberSecondLinker, document.IconTable, table)
}

func (b *archiveBuilder) longnamesMember(m *Member) *document.Node {
	b.longnames = Longnames{data: b.content(m)}
	table := &document.TableContent{Columns: longnamesColumns, Sortable: true}
	entries := b.longnames.Entries()
	for i, e := range entries {
		table.AddRow(strconv.Itoa(i), fmt.Sprintf("0x%08x", e.Offset), e.Name)
	}
	fmt.Fprintf(&b.summary, "Longnames member with %d names\n", len(entries))
	return document.NewTableNode(MemberLongnames, document.IconTable, table)
}

// object decodes a member holding a COFF object or an import/anonymous
// object record. Archives are never nested.
func (b *archiveBuilder) object(m *Member) *document.Node {
	window, ok := b.f.Window(m.DataOffset(), m.Header.Size)
	if !ok {
		m.Kind = MemberUnknown
		fmt.Fprintf(&b.summary, "%s: empty member\n", m.Name)
		return document.NewTextNode("Member content", document.IconDocument, "Warning: Archive member is empty\n")
	}

	switch Classify(window) {
	case KindObject:
		obj := BuildObject(window, ObjectOptions{Options: b.opts})
		m.Kind = MemberObject
		fmt.Fprintf(&b.summary, "%s: COFF object, %s\n", m.Name, MachineName(obj.Header.Machine))
		return obj.Root
	case KindNonCoff:
		obj := BuildNonCoff(window, b.opts)
		m.Kind = MemberImport
		if obj.Header.Version == anonObjectVersion {
			m.Kind = MemberAnonymous
		}
		line := fmt.Sprintf("%s: %s, %s", m.Name, m.Kind, MachineName(obj.Header.Machine))
		if obj.Symbol != "" {
			line += fmt.Sprintf(", %s from %s", obj.Symbol, obj.DLL)
		}
		b.summary.WriteString(line + "\n")
		return obj.Root
	}

	m.Kind = MemberUnknown
	fmt.Fprintf(&b.summary, "%s: unknown member format\n", m.Name)
	return document.NewTextNode("Member content", document.IconDocument,
		"Warning: Archive member is neither a COFF object nor an import object\n")
}
