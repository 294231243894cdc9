package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Master {
	return &Master{
		EC:          "1.1.1.1",
		EnzymeName:  "Alcohol dehydrogenase.",
		AltNames:    "Aldehyde reductase.",
		Reaction:    "a primary alcohol + NAD(+) = an aldehyde + NADH.",
		UniProtID:   "P00330",
		Sequence:    "MKV",
		Length:      3,
		Organism:    "Saccharomyces cerevisiae",
		ProteinName: "Alcohol dehydrogenase 1",
		GeneName:    "ADH1",
		EmbIdx:      7,
	}
}

func TestMasterRecordRoundTrip(t *testing.T) {
	m := sample()
	rec := m.Record()
	require.Len(t, rec, len(MasterHeader))
	got, err := MasterFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMasterUnassignedEmbIdx(t *testing.T) {
	m := sample()
	m.EmbIdx = -1
	rec := m.Record()
	assert.Equal(t, "", rec[11])
	got, err := MasterFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.EmbIdx)
}

func TestMasterFromRecordRejectsShortRows(t *testing.T) {
	_, err := MasterFromRecord([]string{"1.1.1.1"})
	assert.Error(t, err)
}

func TestMastersSortByKey(t *testing.T) {
	a := sample()
	b := sample()
	b.EC = "1.1.1.2"
	c := sample()
	c.UniProtID = "P00331"
	ms := Masters{b, c, a}
	sort.Sort(&ms)
	assert.Equal(t, "1.1.1.1:P00330", ms[0].Key())
	assert.Equal(t, "1.1.1.1:P00331", ms[1].Key())
	assert.Equal(t, "1.1.1.2:P00330", ms[2].Key())
}

func TestRicherPrefersLongerSequence(t *testing.T) {
	a := sample()
	b := sample()
	b.Sequence = "MKVLITG"
	assert.True(t, b.Richer(a))
	assert.False(t, a.Richer(b))
	assert.False(t, a.Richer(a))
}
