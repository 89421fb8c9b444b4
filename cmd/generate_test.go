package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand(t *testing.T) {
	out := t.TempDir()
	c := NewGenerateCommand()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetArgs([]string{
		"-i", "../test/testdata/fixtures/java",
		"-o", out,
		"--go-package", "mavir",
		"--target", "both",
		"--jar", filepath.Join(out, "values.srcjar"),
	})

	err := c.Execute()
	require.ErrorIs(t, err, errFailures)

	report := buf.String()
	assert.Contains(t, report, "generated 5 value types")
	assert.Contains(t, report, filepath.Join(out, "values_gen.go"))
	assert.Contains(t, report, "(5 java files)")
	assert.Contains(t, report, "2 declarations failed")
	assert.Contains(t, report, "Hidden")
	assert.FileExists(t, filepath.Join(out, "values.srcjar"))
}

func TestParseLevel(t *testing.T) {
	ll, err := parseLevel("TRACE")
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, ll)

	ll, err = parseLevel("debug+1")
	require.NoError(t, err)
	assert.Equal(t, -3, int(ll))

	_, err = parseLevel("loud")
	assert.Error(t, err)
}
