package validate

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"enzymepipe/log"
	"enzymepipe/model"
	"enzymepipe/schema"
)

// FieldReport is one data-dictionary row of the quality report.
type FieldReport struct {
	Field      schema.Field
	Rows       int
	Filled     int
	Violations int
	Quality    schema.Quality
}

type Report struct {
	Rows   int
	Fields []FieldReport
	// Examples holds at most a handful of violation messages per field.
	Examples map[string][]string
}

const maxExamples = 5

type counter struct {
	filled     int
	violations int
}

// Run scans the master TSV against the data dictionary. tensorRows < 0
// skips the emb_idx bounds check against the tensor (uniqueness and
// density are still enforced).
func Run(masterPath string, tensorRows int64) (*Report, error) {
	f, err := os.Open(masterPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tr, err := model.NewTSVReader(f)
	if err != nil {
		return nil, err
	}
	if err := tr.ExpectHeader(model.MasterHeader); err != nil {
		return nil, err
	}

	counts := map[string]*counter{}
	for _, fd := range schema.Fields() {
		counts[fd.Name] = &counter{}
	}
	report := &Report{Examples: map[string][]string{}}
	note := func(field, format string, args ...interface{}) {
		counts[field].violations++
		if msgs := report.Examples[field]; len(msgs) < maxExamples {
			report.Examples[field] = append(msgs, fmt.Sprintf(format, args...))
		}
	}

	seenIdx := map[int64]bool{}
	var maxIdx int64 = -1
	rows := 0
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		m, err := model.MasterFromRecord(rec)
		if err != nil {
			return nil, err
		}
		rows++
		for i, fd := range schema.Fields() {
			if rec[i] != "" {
				counts[fd.Name].filled++
			}
		}
		if m.EC != "" && !schema.ValidEC(m.EC) {
			note("EC_number", "row %d: bad EC number %q", rows, m.EC)
		}
		if m.UniProtID != "" && !schema.ValidAccession(m.UniProtID) {
			note("UniProt_ID", "row %d: bad accession %q", rows, m.UniProtID)
		}
		if m.Sequence != "" && !schema.ValidSequence(m.Sequence) {
			note("Sequence", "row %d: malformed sequence for %s", rows, m.UniProtID)
		}
		if m.Length != int64(len(m.Sequence)) {
			note("Length", "row %d: Length %d != len(Sequence) %d", rows, m.Length, len(m.Sequence))
		}
		if m.EmbIdx < 0 {
			note("emb_idx", "row %d: emb_idx unassigned", rows)
		} else {
			if seenIdx[m.EmbIdx] {
				note("emb_idx", "row %d: duplicate emb_idx %d", rows, m.EmbIdx)
			}
			seenIdx[m.EmbIdx] = true
			if m.EmbIdx > maxIdx {
				maxIdx = m.EmbIdx
			}
			if tensorRows >= 0 && m.EmbIdx >= tensorRows {
				note("emb_idx", "row %d: emb_idx %d beyond tensor (%d rows)", rows, m.EmbIdx, tensorRows)
			}
		}
	}
	// Dense from 0 means the max index is rows-1 with no duplicates.
	if maxIdx >= 0 && maxIdx != int64(rows-1) {
		note("emb_idx", "emb_idx not dense: max %d over %d rows", maxIdx, rows)
	}

	report.Rows = rows
	for _, fd := range schema.Fields() {
		c := counts[fd.Name]
		report.Fields = append(report.Fields, FieldReport{
			Field:      fd,
			Rows:       rows,
			Filled:     c.filled,
			Violations: c.violations,
			Quality:    derive(fd, rows, c),
		})
	}
	return report, nil
}

// derive maps observed completeness onto the dictionary's quality
// categories.
func derive(fd schema.Field, rows int, c *counter) schema.Quality {
	if rows == 0 {
		return schema.AllNull
	}
	if c.filled == 0 {
		return schema.AllNull
	}
	if !fd.Optional && c.violations > 0 {
		return schema.Critical
	}
	if c.filled < rows {
		if fd.Optional {
			return schema.Present
		}
		return schema.Missing
	}
	return schema.Good
}

// Critical reports whether any required field failed validation.
func (r *Report) Critical() bool {
	for _, fr := range r.Fields {
		if fr.Quality == schema.Critical {
			return true
		}
	}
	return false
}

func (r *Report) Render(w io.Writer) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Field\tQuality\tFilled\tViolations\tMeaning\tNotes\n")
	for _, fr := range r.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d\t%s\t%s\n",
			fr.Field.Name, fr.Quality, fr.Filled, fr.Rows, fr.Violations, fr.Field.Meaning, fr.Field.Notes)
	}
	_ = tw.Flush()
	for _, fr := range r.Fields {
		for _, msg := range r.Examples[fr.Field.Name] {
			fmt.Fprintf(w, "  %s: %s\n", fr.Field.Name, msg)
		}
	}
}

// Log writes the report through the pipeline logger.
func (r *Report) Log() {
	for _, fr := range r.Fields {
		log.Infof("%-14s %-8s filled %d/%d violations %d", fr.Field.Name, fr.Quality, fr.Filled, fr.Rows, fr.Violations)
	}
}
