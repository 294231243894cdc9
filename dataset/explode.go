package dataset

import (
	"io"
	"os"

	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
)

// Explode turns enzyme_raw.tsv into one row per (EC, accession) pair,
// dropping blanks and duplicate pairs.
func Explode(rawPath, outPath string) (int, error) {
	f, err := os.Open(rawPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return 0, err
	}
	if err := tr.ExpectHeader(model.RawHeader); err != nil {
		return 0, err
	}

	out, err := file.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	tw, err := model.NewTSVWriter(out, model.PairHeader)
	if err != nil {
		return 0, err
	}

	seen := map[string]bool{}
	written := 0
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		entry, err := model.EntryFromRecord(rec)
		if err != nil {
			return 0, err
		}
		for _, acc := range entry.Accessions {
			key := entry.EC + ":" + acc
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := tw.Write(model.Pair{EC: entry.EC, Accession: acc}.Record()); err != nil {
				return 0, err
			}
			written++
		}
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	log.Infof("exploded %d EC-accession pairs to %s", written, outPath)
	return written, nil
}
