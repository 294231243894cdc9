package dataset

import (
	"io"
	"os"
	"strconv"

	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
)

var ManifestHeader = []string{"emb_idx", "UniProt_ID", "EC_number"}

// Finalize numbers the sorted rows densely from 0, writing the master
// TSV and the emb_idx manifest the external embedding run is checked
// against.
func Finalize(sortedPath, masterPath, manifestPath string) (int, error) {
	f, err := os.Open(sortedPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return 0, err
	}
	if err := tr.ExpectHeader(model.MasterHeader); err != nil {
		return 0, err
	}

	out, err := file.Create(masterPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	tw, err := model.NewTSVWriter(out, model.MasterHeader)
	if err != nil {
		return 0, err
	}
	manifest, err := file.Create(manifestPath)
	if err != nil {
		return 0, err
	}
	defer manifest.Close()
	mw, err := model.NewTSVWriter(manifest, ManifestHeader)
	if err != nil {
		return 0, err
	}

	idx := int64(0)
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		m, err := model.MasterFromRecord(rec)
		if err != nil {
			return 0, err
		}
		m.EmbIdx = idx
		if err := tw.Write(m.Record()); err != nil {
			return 0, err
		}
		if err := mw.Write([]string{strconv.FormatInt(idx, 10), m.UniProtID, m.EC}); err != nil {
			return 0, err
		}
		idx++
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	if err := mw.Flush(); err != nil {
		return 0, err
	}
	log.Infof("master finalized: %d rows, emb_idx 0..%d", idx, idx-1)
	return int(idx), nil
}
