package enzyme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enzymepipe/model"
)

const flatfile = `CC   -----------------------------------
CC   Release of 2024_01
CC   -----------------------------------
ID   1.1.1.1
DE   Alcohol dehydrogenase.
AN   Aldehyde reductase.
AN   NAD-dependent alcohol dehydrogenase.
CA   (1) a primary alcohol + NAD(+) = an aldehyde + NADH + H(+).
CA   (2) a secondary alcohol + NAD(+) = a ketone + NADH + H(+).
PR   PROSITE; PDOC00058;
DR   P00330, ADH1_YEAST ;  P00331, ADH2_YEAST ;
DR   PS0001, FAKE_ENTRY ;
//
ID   1.1.1.2
DE   Alcohol dehydrogenase (NADP(+)).
DR   Q6AZW2, A1A1A_DANRE ;
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(flatfile))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	e := entries[0]
	assert.Equal(t, "1.1.1.1", e.EC)
	assert.Equal(t, "Alcohol dehydrogenase.", e.Name)
	assert.Equal(t, "Aldehyde reductase. NAD-dependent alcohol dehydrogenase.", e.AltNames)
	assert.Equal(t,
		"(1) a primary alcohol + NAD(+) = an aldehyde + NADH + H(+). (2) a secondary alcohol + NAD(+) = a ketone + NADH + H(+).",
		e.Reaction)
	assert.Equal(t, "PROSITE; PDOC00058;", e.PrositeRefs)
	// PS-prefixed tokens and entry names must not leak into accessions.
	assert.Equal(t, []string{"P00330", "P00331"}, e.Accessions)

	// The file ends without "//" and the last record still flushes.
	e = entries[1]
	assert.Equal(t, "1.1.1.2", e.EC)
	assert.Equal(t, "Alcohol dehydrogenase (NADP(+)).", e.Name)
	assert.Equal(t, []string{"Q6AZW2"}, e.Accessions)
}

func TestParseIDWithoutTerminatorFlushesPrevious(t *testing.T) {
	entries, err := Parse(strings.NewReader("ID   1.1.1.1\nDE   One.\nID   1.1.1.2\nDE   Two.\n//\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "One.", entries[0].Name)
	assert.Equal(t, "Two.", entries[1].Name)
}

func TestParseSkipsEntriesWithoutEC(t *testing.T) {
	entries, err := Parse(strings.NewReader("DE   Orphan description.\n//\n"))
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}

func TestWriteRaw(t *testing.T) {
	dir := t.TempDir()
	dat := filepath.Join(dir, "enzyme.dat")
	require.NoError(t, os.WriteFile(dat, []byte(flatfile), 0o644))
	out := filepath.Join(dir, "enzyme_raw.tsv")

	n, err := WriteRaw(dat, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	require.NoError(t, err)
	require.NoError(t, tr.ExpectHeader(model.RawHeader))
	rec, err := tr.Next()
	require.NoError(t, err)
	entry, err := model.EntryFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "1.1.1.1", entry.EC)
	assert.Equal(t, []string{"P00330", "P00331"}, entry.Accessions)
}
