package uniprot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"enzymepipe/consts"
	"enzymepipe/log"
	"enzymepipe/model"
)

const DefaultURL = "https://rest.uniprot.org/uniprotkb/search"

var ErrStatus = errors.New("unexpected status code")

// fields requested from the UniProt search endpoint.
var queryFields = []string{
	"accession",
	"organism_name",
	"protein_name",
	"gene_primary",
	"sequence",
	"length",
}

// headerAliases maps the column spellings UniProt has shipped over time
// to the internal names.
var headerAliases = map[string]string{
	"Entry":                      "UniProt_ID",
	"Accession":                  "UniProt_ID",
	"Organism":                   "Organism",
	"Organism (scientific name)": "Organism",
	"Organism [Organism]":        "Organism",
	"Protein names":              "Protein_name",
	"Protein name":               "Protein_name",
	"Gene Names":                 "Gene_name",
	"Gene Names (primary)":       "Gene_name",
	"Gene Names (primary name)":  "Gene_name",
	"Sequence":                   "Sequence",
	"Length":                     "Length",
}

type Client struct {
	URL       string
	ChunkSize int
	Sleep     time.Duration
	Retries   int
	HTTP      *http.Client
}

func NewClient(endpoint string, chunkSize int, sleep time.Duration, retries int) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if chunkSize <= 0 {
		chunkSize = consts.UniProtChunkSize
	}
	if retries <= 0 {
		retries = consts.UniProtRetries
	}
	return &Client{
		URL:       endpoint,
		ChunkSize: chunkSize,
		Sleep:     sleep,
		Retries:   retries,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BuildQuery renders "accession:A OR accession:B OR ...".
func BuildQuery(accessions []string) string {
	parts := make([]string, len(accessions))
	for i, acc := range accessions {
		parts[i] = "accession:" + acc
	}
	return strings.Join(parts, " OR ")
}

// Chunk splits ids into runs of at most size.
func Chunk(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		chunks = append(chunks, ids[i:min(i+size, len(ids))])
	}
	return chunks
}

// FetchBatch downloads one batch of accessions as TSV and parses it.
// Transient transport errors are retried with a flat backoff.
func (c *Client) FetchBatch(ctx context.Context, accessions []string) ([]*model.Protein, error) {
	if len(accessions) == 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("query", BuildQuery(accessions))
	params.Set("format", "tsv")
	params.Set("fields", strings.Join(queryFields, ","))
	params.Set("size", strconv.Itoa(consts.UniProtPageSize))

	var lastErr error
	for attempt := 0; attempt < c.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		proteins, err := c.fetch(ctx, params)
		if err == nil {
			return proteins, nil
		}
		lastErr = err
		log.Warnf("uniprot batch of %d failed (attempt %d/%d): %v", len(accessions), attempt+1, c.Retries, err)
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]*model.Protein, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("close response body: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, string(body))
	}
	return ParseResponse(resp.Body)
}

// ParseResponse decodes a UniProt TSV body into proteins, tolerating any
// of the known header spellings. An empty body means no hits.
func ParseResponse(r io.Reader) ([]*model.Protein, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return nil, nil
	}
	tr, err := model.NewTSVReader(br)
	if err != nil {
		return nil, err
	}
	cols := map[string]int{}
	for i, h := range tr.Header() {
		if name, ok := headerAliases[h]; ok {
			cols[name] = i
		}
	}
	pick := func(rec []string, name string) string {
		if i, ok := cols[name]; ok {
			return rec[i]
		}
		return ""
	}
	proteins := make([]*model.Protein, 0)
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p := &model.Protein{
			Accession:   pick(rec, "UniProt_ID"),
			Sequence:    pick(rec, "Sequence"),
			Organism:    pick(rec, "Organism"),
			ProteinName: pick(rec, "Protein_name"),
			GeneName:    pick(rec, "Gene_name"),
		}
		if s := pick(rec, "Length"); s != "" {
			length, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("accession %s: bad length %q", p.Accession, s)
			}
			p.Length = length
		}
		if p.Accession == "" {
			continue
		}
		proteins = append(proteins, p)
	}
	return proteins, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
