package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
)

func TestDirStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewDirStorage(filepath.Join(root, "reports"))
	require.NoError(t, err)

	require.NoError(t, s.UploadObject(ctx, "2026/04/plan.csv", []byte("a,b\n"), "text/csv"))
	require.NoError(t, s.UploadObject(ctx, "2026/05/plan.csv", []byte("c,d,e\n"), "text/csv"))

	objs, err := s.ListObjects(ctx, "2026/04")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "2026/04/plan.csv", objs[0].Key)
	assert.Equal(t, int64(4), objs[0].Size)

	all, err := s.ListObjects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dest := filepath.Join(root, "out", "copy.csv")
	require.NoError(t, s.DownloadObject(ctx, "2026/05/plan.csv", dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "c,d,e\n", string(data))
}

func TestOpenFallsBackToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s, err := Open(context.Background(), config.ObjectStorageConfig{Enabled: false}, dir)
	require.NoError(t, err)
	_, ok := s.(*DirStorage)
	assert.True(t, ok)

	s, err = Open(context.Background(), config.ObjectStorageConfig{Enabled: true}, dir)
	require.NoError(t, err)
	_, ok = s.(*DirStorage)
	assert.True(t, ok, "missing endpoint credentials fall back to disk")
}
