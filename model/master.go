package model

import (
	"fmt"
	"strconv"
)

// Master is one row of the final dataset, in data-dictionary column
// order. EmbIdx is -1 until assigned.
type Master struct {
	EC          string
	EnzymeName  string
	AltNames    string
	Reaction    string
	PrositeRefs string
	UniProtID   string
	Sequence    string
	Length      int64
	Organism    string
	ProteinName string
	GeneName    string
	EmbIdx      int64
}

var MasterHeader = []string{
	"EC_number", "Enzyme_name", "Alt_names", "Reaction", "Prosite_refs",
	"UniProt_ID", "Sequence", "Length", "Organism", "Protein_name",
	"Gene_name", "emb_idx",
}

func (m *Master) Record() []string {
	embIdx := ""
	if m.EmbIdx >= 0 {
		embIdx = strconv.FormatInt(m.EmbIdx, 10)
	}
	return []string{
		m.EC, m.EnzymeName, m.AltNames, m.Reaction, m.PrositeRefs,
		m.UniProtID, m.Sequence, strconv.FormatInt(m.Length, 10),
		m.Organism, m.ProteinName, m.GeneName, embIdx,
	}
}

func MasterFromRecord(rec []string) (*Master, error) {
	if len(rec) != len(MasterHeader) {
		return nil, fmt.Errorf("master record has %d fields, want %d", len(rec), len(MasterHeader))
	}
	m := &Master{
		EC:          rec[0],
		EnzymeName:  rec[1],
		AltNames:    rec[2],
		Reaction:    rec[3],
		PrositeRefs: rec[4],
		UniProtID:   rec[5],
		Sequence:    rec[6],
		Organism:    rec[8],
		ProteinName: rec[9],
		GeneName:    rec[10],
		EmbIdx:      -1,
	}
	if rec[7] != "" {
		length, err := strconv.ParseInt(rec[7], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("master %s/%s: bad length %q", m.EC, m.UniProtID, rec[7])
		}
		m.Length = length
	}
	if rec[11] != "" {
		embIdx, err := strconv.ParseInt(rec[11], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("master %s/%s: bad emb_idx %q", m.EC, m.UniProtID, rec[11])
		}
		m.EmbIdx = embIdx
	}
	return m, nil
}

// Key is the dedup identity of a master row.
func (m *Master) Key() string {
	return m.EC + ":" + m.UniProtID
}

func (m *Master) Compare(o *Master) int {
	if m.EC != o.EC {
		if m.EC < o.EC {
			return -1
		}
		return 1
	}
	if m.UniProtID != o.UniProtID {
		if m.UniProtID < o.UniProtID {
			return -1
		}
		return 1
	}
	return 0
}

// Richer reports whether m should win a dedup against o: the longer
// sequence wins, ties keep the incumbent.
func (m *Master) Richer(o *Master) bool {
	return len(m.Sequence) > len(o.Sequence)
}

type Masters []*Master

func (ms *Masters) Len() int {
	return len(*ms)
}

func (ms *Masters) Less(i, j int) bool {
	return (*ms)[i].Compare((*ms)[j]) < 0
}

func (ms *Masters) Swap(i, j int) {
	(*ms)[i], (*ms)[j] = (*ms)[j], (*ms)[i]
}
