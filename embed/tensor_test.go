package embed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emb.embt")
	require.NoError(t, Write(path, [][]float32{
		{0.5, -1.25},
		{2, 3},
		{4, 5},
	}))

	h, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(Version), h.Version)
	assert.Equal(t, uint64(3), h.Rows)
	assert.Equal(t, uint32(2), h.Dim)
}

func TestCheckBounds(t *testing.T) {
	h := Header{Version: Version, Rows: 3, Dim: 2}
	assert.NoError(t, h.Check(-1))
	assert.NoError(t, h.Check(0))
	assert.NoError(t, h.Check(2))
	assert.Error(t, h.Check(3))
}

func TestRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emb.embt")
	require.NoError(t, Write(path, [][]float32{
		{0.5, -1.25},
		{2, 3},
	}))
	vec, err := Row(path, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3}, vec)
	_, err = Row(path, 2)
	assert.Error(t, err)
}

func TestReadHeaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk")
	require.NoError(t, os.WriteFile(path, []byte("not a tensor at all"), 0o644))
	_, err := ReadHeader(path)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestWriteRejectsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emb.embt")
	err := Write(path, [][]float32{{1, 2}, {3}})
	assert.Error(t, err)
}

func TestEmptyTensor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emb.embt")
	require.NoError(t, Write(path, nil))
	h, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), h.Rows)
	assert.Error(t, h.Check(0))
}
