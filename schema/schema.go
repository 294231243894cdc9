package schema

import (
	"bytes"
	"fmt"
	"regexp"
)

// Quality is the observed completeness/quality status of a field.
type Quality int

const (
	Good Quality = iota
	Present
	Missing
	Critical
	AllNull
)

func (q Quality) String() string {
	switch q {
	case Good:
		return "Good"
	case Present:
		return "Present"
	case Missing:
		return "Missing"
	case Critical:
		return "Critical"
	case AllNull:
		return "ALL NULL"
	}
	return "Unknown"
}

// Field is one row of the data dictionary describing the master table.
type Field struct {
	Name     string
	Meaning  string
	Optional bool
	// Excluded fields stay in the TSV but are dropped from the derived
	// database schema.
	Excluded bool
	Rule     string
	Notes    string
}

// fields is the dictionary of the master row, in column order.
var fields = []Field{
	{
		Name:    "EC_number",
		Meaning: "Enzyme Commission classification code",
		Rule:    "Must validate format",
	},
	{
		Name:    "Enzyme_name",
		Meaning: "Recommended enzyme name from ENZYME",
	},
	{
		Name:     "Alt_names",
		Meaning:  "Alternative enzyme names",
		Optional: true,
		Notes:    "~47000 missing values expected",
	},
	{
		Name:    "Reaction",
		Meaning: "Catalyzed reaction description",
	},
	{
		Name:     "Prosite_refs",
		Meaning:  "PROSITE cross-references",
		Optional: true,
		Excluded: true,
		Notes:    "Empty across all rows; excluded from derived schema",
	},
	{
		Name:    "UniProt_ID",
		Meaning: "UniProt accession of the protein",
		Rule:    "Must validate format",
	},
	{
		Name:    "Sequence",
		Meaning: "Amino-acid sequence",
		Rule:    "Must be a well-formed amino-acid sequence",
	},
	{
		Name:    "Length",
		Meaning: "Sequence length in residues",
		Rule:    "Must match Sequence",
		Notes:   "Redundant with Sequence",
	},
	{
		Name:    "Organism",
		Meaning: "Source organism scientific name",
	},
	{
		Name:    "Protein_name",
		Meaning: "UniProt protein name",
	},
	{
		Name:     "Gene_name",
		Meaning:  "Primary gene name",
		Optional: true,
		Notes:    "~14000 missing values expected",
	},
	{
		Name:    "emb_idx",
		Meaning: "Row index into the external embedding tensor",
		Rule:    "Must resolve to a valid tensor row",
		Notes:   "Assigned densely from 0 in master order",
	},
}

func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var (
	// ENZYME prints complete EC numbers, including preliminary ones with
	// an n-prefixed serial (e.g. 1.1.1.n12).
	ecPattern = regexp.MustCompile(`^[1-7]\.\d+\.\d+\.n?\d+$`)

	// The accession pattern published in the UniProt release notes.
	accessionPattern = regexp.MustCompile(`^([OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2})$`)

	// 20 standard residues plus the UniProt ambiguity/rarity codes B, J,
	// O, U, X, Z.
	sequencePattern = regexp.MustCompile(`^[ACDEFGHIKLMNPQRSTVWYBJOUXZ]+$`)
)

func ValidEC(s string) bool {
	return ecPattern.MatchString(s)
}

func ValidAccession(s string) bool {
	return accessionPattern.MatchString(s)
}

func ValidSequence(s string) bool {
	return sequencePattern.MatchString(s)
}

// columnTypes maps dictionary fields to MySQL column types.
var columnTypes = map[string]string{
	"EC_number":    "char(16)",
	"Enzyme_name":  "varchar(512)",
	"Alt_names":    "text",
	"Reaction":     "text",
	"UniProt_ID":   "char(10)",
	"Sequence":     "mediumtext",
	"Length":       "bigint(20)",
	"Organism":     "varchar(256)",
	"Protein_name": "text",
	"Gene_name":    "varchar(64)",
	"emb_idx":      "bigint(20)",
}

// DDL derives the CREATE TABLE statement for the master table. Excluded
// fields are dropped, optional fields are nullable.
func DDL(database, table string) string {
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.`%s` (\n", database, table))
	for _, f := range fields {
		if f.Excluded {
			continue
		}
		null := "NOT NULL"
		if f.Optional {
			null = "DEFAULT NULL"
		}
		buf.WriteString(fmt.Sprintf("  `%s` %s %s,\n", f.Name, columnTypes[f.Name], null))
	}
	buf.WriteString("  PRIMARY KEY (`EC_number`,`UniProt_ID`)\n")
	buf.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
	return buf.String()
}

// InsertColumns is the column list for INSERT statements, in dictionary
// order with excluded fields dropped.
func InsertColumns() []string {
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Excluded {
			continue
		}
		cols = append(cols, f.Name)
	}
	return cols
}
