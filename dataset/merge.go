package dataset

import (
	"io"
	"os"

	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
)

// Merge joins EC metadata and downloaded protein metadata onto the
// pairs, writing unsorted master rows (emb_idx unassigned). Pairs whose
// protein is absent or sequence-less are dropped, as are pairs whose EC
// entry vanished between stages.
func Merge(rawPath, pairsPath, sequencesPath, outPath string) (kept, dropped int, err error) {
	entries, err := loadEntries(rawPath)
	if err != nil {
		return 0, 0, err
	}
	proteins, err := loadProteins(sequencesPath)
	if err != nil {
		return 0, 0, err
	}

	f, err := os.Open(pairsPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return 0, 0, err
	}
	if err := tr.ExpectHeader(model.PairHeader); err != nil {
		return 0, 0, err
	}

	out, err := file.Create(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer out.Close()
	tw, err := model.NewTSVWriter(out, model.MasterHeader)
	if err != nil {
		return 0, 0, err
	}

	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}
		pair, err := model.PairFromRecord(rec)
		if err != nil {
			return 0, 0, err
		}
		entry := entries[pair.EC]
		protein := proteins[pair.Accession]
		if entry == nil || protein == nil || protein.Sequence == "" {
			dropped++
			continue
		}
		length := protein.Length
		if length == 0 {
			length = int64(len(protein.Sequence))
		}
		m := &model.Master{
			EC:          pair.EC,
			EnzymeName:  entry.Name,
			AltNames:    entry.AltNames,
			Reaction:    entry.Reaction,
			PrositeRefs: entry.PrositeRefs,
			UniProtID:   pair.Accession,
			Sequence:    protein.Sequence,
			Length:      length,
			Organism:    protein.Organism,
			ProteinName: protein.ProteinName,
			GeneName:    protein.GeneName,
			EmbIdx:      -1,
		}
		if err := tw.Write(m.Record()); err != nil {
			return 0, 0, err
		}
		kept++
	}
	if err := tw.Flush(); err != nil {
		return 0, 0, err
	}
	log.Infof("merged %d rows, dropped %d without sequence", kept, dropped)
	return kept, dropped, nil
}

func loadEntries(rawPath string) (map[string]*model.Entry, error) {
	f, err := os.Open(rawPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return nil, err
	}
	if err := tr.ExpectHeader(model.RawHeader); err != nil {
		return nil, err
	}
	entries := map[string]*model.Entry{}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entry, err := model.EntryFromRecord(rec)
		if err != nil {
			return nil, err
		}
		entries[entry.EC] = entry
	}
}

func loadProteins(sequencesPath string) (map[string]*model.Protein, error) {
	f, err := os.Open(sequencesPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return nil, err
	}
	if err := tr.ExpectHeader(model.ProteinHeader); err != nil {
		return nil, err
	}
	proteins := map[string]*model.Protein{}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			return proteins, nil
		}
		if err != nil {
			return nil, err
		}
		p, err := model.ProteinFromRecord(rec)
		if err != nil {
			return nil, err
		}
		proteins[p.Accession] = p
	}
}
