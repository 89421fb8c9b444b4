package manifest

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Snapshots)
}

func TestAddSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")

	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "base", Version: "v1", File: "a.go", Types: []string{"GeneratedA"}})
	m.AddSnapshot(Snapshot{Name: "base", Version: "v2", File: "b.go"})
	m.AddSnapshot(Snapshot{Name: "base", Version: "v2", File: "c.go", Jar: "c.srcjar"})
	assert.Equal(t, "v2", m.CurrentVersion)
	assert.Equal(t, "v2", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)
	assert.Equal(t, "c.go", m.SnapshotFile("v2"))

	m.AddSnapshot(Snapshot{Name: "base", Version: "v3", File: "d.go"})
	assert.Equal(t, "v2", m.PreviousVersion)
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
	s, ok := got.Snapshot("v1")
	require.True(t, ok)
	assert.Equal(t, []string{"GeneratedA"}, s.Types)
	assert.Empty(t, got.SnapshotFile("v9"))
}
