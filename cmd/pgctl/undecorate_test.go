package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndecorateCommand(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, func() error {
		return runUndecorate([]string{"?foo@@YAHH@Z", "_Sleep@4", "__imp_printf", "plain"})
	})
	require.NoError(t, err)
	assert.Equal(t, "int __cdecl foo(int)\nSleep\nimport: printf\nplain\n", output)
}

func TestUndecorateCommandVerbose(t *testing.T) {
	resetFlags()
	verbose = true

	output, err := captureOutput(t, func() error {
		return runUndecorate([]string{"_Z3fooi", "_Z3fooi"})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"_Z3fooi -> foo(int)\n",
		"Cache: 1 hits, 1 misses, 1 entries\n",
	})
}

func TestUndecorateCommandJSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runUndecorate([]string{"@fast@12", ".text"})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var results []undecorated
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	assert.Equal(t, []undecorated{
		{Name: "@fast@12", Text: "fast", Decorated: true},
		{Name: ".text", Text: ".text", Decorated: false},
	}, results)
}
