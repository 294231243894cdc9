package uniprot

import (
	"io"
	"os"
	"sort"

	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
)

var missingHeader = []string{"UniProt_ID"}

// FindMissing writes the accessions that appear in the pairs file but
// not in the downloaded sequences file.
func FindMissing(pairsPath, sequencesPath, outPath string) (int, error) {
	wanted, err := readAccessions(pairsPath)
	if err != nil {
		return 0, err
	}
	got := map[string]bool{}
	f, err := os.Open(sequencesPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return 0, err
	}
	if err := tr.ExpectHeader(model.ProteinHeader); err != nil {
		return 0, err
	}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		got[rec[0]] = true
	}

	missing := make([]string, 0)
	for _, id := range wanted {
		if !got[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	out, err := file.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	tw, err := model.NewTSVWriter(out, missingHeader)
	if err != nil {
		return 0, err
	}
	for _, id := range missing {
		if err := tw.Write([]string{id}); err != nil {
			return 0, err
		}
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	log.Infof("%d wanted, %d downloaded, %d missing", len(wanted), len(got), len(missing))
	return len(missing), nil
}
