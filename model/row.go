package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one parsed ENZYME flatfile record.
type Entry struct {
	EC          string
	Name        string
	AltNames    string
	Reaction    string
	PrositeRefs string
	Accessions  []string
}

var RawHeader = []string{"EC_number", "Enzyme_name", "Alt_names", "Reaction", "Prosite_refs", "UniProt_IDs"}

func (e *Entry) Record() []string {
	return []string{e.EC, e.Name, e.AltNames, e.Reaction, e.PrositeRefs, strings.Join(e.Accessions, ",")}
}

func EntryFromRecord(rec []string) (*Entry, error) {
	if len(rec) != len(RawHeader) {
		return nil, fmt.Errorf("raw record has %d fields, want %d", len(rec), len(RawHeader))
	}
	e := &Entry{
		EC:          rec[0],
		Name:        rec[1],
		AltNames:    rec[2],
		Reaction:    rec[3],
		PrositeRefs: rec[4],
	}
	for _, acc := range strings.Split(rec[5], ",") {
		if acc = strings.TrimSpace(acc); acc != "" {
			e.Accessions = append(e.Accessions, acc)
		}
	}
	return e, nil
}

// Pair links one EC number to one UniProt accession.
type Pair struct {
	EC        string
	Accession string
}

var PairHeader = []string{"EC_number", "UniProt_ID"}

func (p Pair) Record() []string {
	return []string{p.EC, p.Accession}
}

func PairFromRecord(rec []string) (Pair, error) {
	if len(rec) != len(PairHeader) {
		return Pair{}, fmt.Errorf("pair record has %d fields, want %d", len(rec), len(PairHeader))
	}
	return Pair{EC: rec[0], Accession: rec[1]}, nil
}

// Protein is the UniProt metadata downloaded for one accession.
type Protein struct {
	Accession   string
	Sequence    string
	Length      int64
	Organism    string
	ProteinName string
	GeneName    string
}

var ProteinHeader = []string{"UniProt_ID", "Sequence", "Length", "Organism", "Protein_name", "Gene_name"}

func (p *Protein) Record() []string {
	length := ""
	if p.Length > 0 {
		length = strconv.FormatInt(p.Length, 10)
	}
	return []string{p.Accession, p.Sequence, length, p.Organism, p.ProteinName, p.GeneName}
}

func ProteinFromRecord(rec []string) (*Protein, error) {
	if len(rec) != len(ProteinHeader) {
		return nil, fmt.Errorf("protein record has %d fields, want %d", len(rec), len(ProteinHeader))
	}
	p := &Protein{
		Accession:   rec[0],
		Sequence:    rec[1],
		Organism:    rec[3],
		ProteinName: rec[4],
		GeneName:    rec[5],
	}
	if rec[2] != "" {
		length, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("protein %s: bad length %q", p.Accession, rec[2])
		}
		p.Length = length
	}
	return p, nil
}
