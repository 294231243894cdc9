package filesort

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enzymepipe/model"
	"enzymepipe/rver"
)

func writeMasters(t *testing.T, path string, rows []*model.Master) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	tw, err := model.NewTSVWriter(f, model.MasterHeader)
	require.NoError(t, err)
	for _, m := range rows {
		require.NoError(t, tw.Write(m.Record()))
	}
	require.NoError(t, tw.Flush())
}

func readMasters(t *testing.T, path string) []*model.Master {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	require.NoError(t, err)
	require.NoError(t, tr.ExpectHeader(model.MasterHeader))
	out := make([]*model.Master, 0)
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		m, err := model.MasterFromRecord(rec)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func row(ec, acc, seq string) *model.Master {
	return &model.Master{
		EC:         ec,
		EnzymeName: "x",
		UniProtID:  acc,
		Sequence:   seq,
		Length:     int64(len(seq)),
		EmbIdx:     -1,
	}
}

func TestSorting(t *testing.T) {
	dir := t.TempDir()
	src1 := filepath.Join(dir, "a.tsv")
	src2 := filepath.Join(dir, "b.tsv")
	result := filepath.Join(dir, "sorted.tsv")
	writeMasters(t, src1, []*model.Master{
		row("1.1.1.2", "P00331", "MKVL"),
		row("1.1.1.1", "P00330", "MK"),
		row("1.1.1.1", "P00330", "MKVLITG"),
	})
	writeMasters(t, src2, []*model.Master{
		row("1.1.1.1", "P00330", "MKV"),
		row("1.1.1.3", "Q6AZW2", "MSTV"),
	})
	ck, err := rver.New(filepath.Join(dir, "sort.recover"))
	require.NoError(t, err)

	fs, err := New([]string{src1, src2}, ck)
	require.NoError(t, err)
	defer fs.Close()
	require.NoError(t, fs.Sorting(result))
	assert.Equal(t, result, fs.Result())

	got := readMasters(t, result)
	require.Len(t, got, 3)
	assert.Equal(t, "1.1.1.1:P00330", got[0].Key())
	assert.Equal(t, "1.1.1.2:P00331", got[1].Key())
	assert.Equal(t, "1.1.1.3:Q6AZW2", got[2].Key())
	// Duplicate keys collapse to the longest sequence across sources.
	assert.Equal(t, "MKVLITG", got[0].Sequence)
}

func TestSortingReusesCheckpoint(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.tsv")
	result := filepath.Join(dir, "sorted.tsv")
	writeMasters(t, src, []*model.Master{row("1.1.1.1", "P00330", "MKV")})
	ck, err := rver.New(filepath.Join(dir, "sort.recover"))
	require.NoError(t, err)

	fs, err := New([]string{src}, ck)
	require.NoError(t, err)
	require.NoError(t, fs.Sorting(result))
	fs.Close()

	// The second sorter sees the checkpoint and reuses the result.
	fs2, err := New([]string{src}, ck)
	require.NoError(t, err)
	defer fs2.Close()
	require.NoError(t, fs2.Sorting(filepath.Join(dir, "other.tsv")))
	assert.Equal(t, result, fs2.Result())
}

func TestSortingEmptySource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.tsv")
	result := filepath.Join(dir, "sorted.tsv")
	writeMasters(t, src, nil)
	ck, err := rver.New(filepath.Join(dir, "sort.recover"))
	require.NoError(t, err)

	fs, err := New([]string{src}, ck)
	require.NoError(t, err)
	defer fs.Close()
	require.NoError(t, fs.Sorting(result))
	assert.Len(t, readMasters(t, result), 0)
}
