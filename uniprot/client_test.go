package uniprot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "accession:P00330", BuildQuery([]string{"P00330"}))
	assert.Equal(t, "accession:P00330 OR accession:P00331", BuildQuery([]string{"P00330", "P00331"}))
}

func TestChunk(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	chunks := Chunk(ids, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"a", "b"}, chunks[0])
	assert.Equal(t, []string{"e"}, chunks[2])
	assert.Len(t, Chunk(nil, 2), 0)
}

func TestParseResponse(t *testing.T) {
	body := "Entry\tOrganism\tProtein names\tGene Names (primary)\tSequence\tLength\n" +
		"P00330\tSaccharomyces cerevisiae\tAlcohol dehydrogenase 1\tADH1\tMKV\t3\n" +
		"P00331\tSaccharomyces cerevisiae\tAlcohol dehydrogenase 2\t\tMKVL\t4\n"
	proteins, err := ParseResponse(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, proteins, 2)
	p := proteins[0]
	assert.Equal(t, "P00330", p.Accession)
	assert.Equal(t, "MKV", p.Sequence)
	assert.Equal(t, int64(3), p.Length)
	assert.Equal(t, "ADH1", p.GeneName)
	assert.Equal(t, "", proteins[1].GeneName)
}

func TestParseResponseAlternativeHeaders(t *testing.T) {
	body := "Accession\tOrganism (scientific name)\tProtein name\tGene Names\tSequence\tLength\n" +
		"P00330\tE. coli\tSomething\tadh\tMKV\t3\n"
	proteins, err := ParseResponse(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, proteins, 1)
	assert.Equal(t, "E. coli", proteins[0].Organism)
}

func TestParseResponseEmptyBodyMeansNoHits(t *testing.T) {
	proteins, err := ParseResponse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Len(t, proteins, 0)
}

func TestFetchBatch(t *testing.T) {
	var gotQuery, gotFormat, gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotFormat = r.URL.Query().Get("format")
		gotSize = r.URL.Query().Get("size")
		fmt.Fprint(w, "Entry\tOrganism\tProtein names\tGene Names (primary)\tSequence\tLength\n")
		fmt.Fprint(w, "P00330\tyeast\tADH1\tADH1\tMKV\t3\n")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50, 0, 1)
	proteins, err := c.FetchBatch(context.Background(), []string{"P00330"})
	require.NoError(t, err)
	require.Len(t, proteins, 1)
	assert.Equal(t, "accession:P00330", gotQuery)
	assert.Equal(t, "tsv", gotFormat)
	assert.Equal(t, "499", gotSize)
}

func TestFetchBatchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50, 0, 1)
	_, err := c.FetchBatch(context.Background(), []string{"P00330"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
}

func TestFetchBatchEmptyInput(t *testing.T) {
	c := NewClient("http://unused", 50, 0, 1)
	proteins, err := c.FetchBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, proteins)
}
