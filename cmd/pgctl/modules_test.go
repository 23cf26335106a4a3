package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulesCommand(t *testing.T) {
	resetFlags()
	modulesSchemas = false

	output, err := captureOutput(t, func() error {
		return runModules(nil)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"COFF module (development)\n",
		"  COFF object files (*.obj;*.cof;*.o): *.obj;*.cof;*.o\n",
		"ELF binary module (development)\n",
		"PNG image module (image)\n",
		"SID C64 audio module (audio)\n",
		"C64 disk image module (misc)\n",
	})
	assertNotContains(t, output, []string{"schema:", "Filter string:"})
}

func TestModulesCommandSchemas(t *testing.T) {
	resetFlags()
	verbose = true
	modulesSchemas = true
	defer func() { modulesSchemas = false }()

	output, err := captureOutput(t, func() error {
		return runModules(nil)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"  schema: coff_header\n",
		"  schema: png_chunk_header\n",
		"  schema: c64_directory_entry\n",
		"Filter string: COFF library files",
	})
}

func TestModulesCommandJSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runModules(nil)
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var infos []moduleInfo
	require.NoError(t, json.Unmarshal([]byte(output), &infos))
	require.Len(t, infos, 6)
	assert.Equal(t, "COFF module", infos[0].Name)
	assert.Len(t, infos[0].Filters, 2)
	assert.Equal(t, "PNG image module", infos[2].Name)
	assert.Equal(t, "image", infos[2].Icon)
	assert.Contains(t, infos[1].Schemas, "elf_ident")
}
