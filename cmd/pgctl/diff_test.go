package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/internal/testutil"
)

func TestDiffCommand(t *testing.T) {
	small := testutil.WriteFile(t, "small.png", testutil.PNG(
		testutil.Chunk{Type: "IHDR", Data: testutil.IHDR(1, 1, 8, 2, 0)},
		testutil.Chunk{Type: "IEND"},
	))
	large := testutil.WriteFile(t, "large.png", testutil.PNG(
		testutil.Chunk{Type: "IHDR", Data: testutil.IHDR(640, 480, 8, 2, 0)},
		testutil.Chunk{Type: "IEND"},
	))

	t.Run("different", func(t *testing.T) {
		resetFlags()
		diffContext = 3

		output, err := captureOutput(t, func() error {
			return runDiff([]string{small, large})
		})
		require.NoError(t, err)
		assertContains(t, output, []string{
			"--- " + small + "\n",
			"+++ " + large + "\n",
			"-  PNG file: small.png\n",
			"+  PNG file: large.png\n",
			"-  Image size: 1 x 1 (8 bit per channel)\n",
			"+  Image size: 640 x 480 (8 bit per channel)\n",
		})
	})

	t.Run("identical", func(t *testing.T) {
		resetFlags()
		diffContext = 3

		output, err := captureOutput(t, func() error {
			return runDiff([]string{small, small})
		})
		require.NoError(t, err)
		assert.Equal(t, "Files are identical\n", output)
	})

	t.Run("json", func(t *testing.T) {
		resetFlags()
		jsonOut = true
		diffContext = 0

		output, err := captureOutput(t, func() error {
			return runDiff([]string{small, large})
		})
		require.NoError(t, err)
		assertJSON(t, output)
		assertContains(t, output, []string{`"identical": false`, `"file1": "` + small + `"`})
	})

	t.Run("unknown file", func(t *testing.T) {
		resetFlags()
		err := runDiff([]string{small, testutil.WriteFile(t, "notes.txt", []byte("text"))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to dump")
	})
}
