package uniprot

import (
	"context"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
	"enzymepipe/rver"
)

// Checkpoint flags for the fetch stage.
const (
	FlagNone = iota
	FlagRunning
	FlagDone
)

// Download fetches UniProt metadata for every accession in the pairs
// file and writes the sequences TSV. Progress is checkpointed per chunk
// so an interrupted download resumes after the last completed chunk;
// chunks that fail all retries are logged and left for a follow-up
// missing+fetch round.
func (c *Client) Download(ctx context.Context, pairsPath, outPath string, ck *rver.Recover) error {
	ids, err := readAccessions(pairsPath)
	if err != nil {
		return err
	}
	log.Infof("found %d unique accessions in %s", len(ids), pairsPath)
	chunks := Chunk(ids, c.ChunkSize)

	flag, payload, err := ck.Load()
	if err != nil {
		return err
	}
	if flag == FlagDone {
		log.Infof("fetch already complete, skipped")
		return nil
	}
	completed := 0
	if flag == FlagRunning && payload != "" {
		if completed, err = strconv.Atoi(payload); err != nil {
			completed = 0
		}
	}

	var out *file.File
	var tw *model.TSVWriter
	seen := map[string]bool{}
	if completed > 0 {
		// Resuming: reopen for append and reload what is already there.
		if err := seedSeen(outPath, seen); err != nil {
			return err
		}
		out, err = file.New(outPath, os.O_RDWR|os.O_APPEND)
		if err != nil {
			return err
		}
		tw = model.NewTSVAppender(out, model.ProteinHeader)
		log.Infof("resuming fetch from chunk %d/%d (%d rows on disk)", completed, len(chunks), len(seen))
	} else {
		out, err = file.Create(outPath)
		if err != nil {
			return err
		}
		if tw, err = model.NewTSVWriter(out, model.ProteinHeader); err != nil {
			return err
		}
	}
	defer out.Close()

	fetched := 0
	failed := 0
	for i := completed; i < len(chunks); i++ {
		proteins, err := c.FetchBatch(ctx, chunks[i])
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			log.Errorf("chunk %d/%d dropped: %v", i+1, len(chunks), err)
		}
		for _, p := range proteins {
			if seen[p.Accession] {
				continue
			}
			seen[p.Accession] = true
			if err := tw.Write(p.Record()); err != nil {
				return err
			}
			fetched++
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if err := ck.Make(FlagRunning, strconv.Itoa(i+1)); err != nil {
			return err
		}
		log.Infof("chunk %d/%d: %d accessions, %d rows", i+1, len(chunks), len(chunks[i]), fetched)
		if c.Sleep > 0 && i+1 < len(chunks) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.Sleep):
			}
		}
	}
	if err := ck.Make(FlagDone, ""); err != nil {
		return err
	}
	log.Infof("fetch finished: %d rows total, %d chunks failed", len(seen), failed)
	return nil
}

func readAccessions(pairsPath string) ([]string, error) {
	f, err := os.Open(pairsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return nil, err
	}
	if err := tr.ExpectHeader(model.PairHeader); err != nil {
		return nil, err
	}
	set := map[string]bool{}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pair, err := model.PairFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if pair.Accession != "" {
			set[pair.Accession] = true
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func seedSeen(path string, seen map[string]bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return err
	}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		seen[rec[0]] = true
	}
}
