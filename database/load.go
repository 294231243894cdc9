package database

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"enzymepipe/consts"
	"enzymepipe/log"
	"enzymepipe/model"
	"enzymepipe/schema"
)

// InitTable creates the database and the master table from the derived
// schema.
func (d *DB) InitTable(dbName, table string) error {
	_, err := d.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET 'utf8mb4' COLLATE 'utf8mb4_bin';", dbName))
	if err != nil {
		log.Error(err)
		return err
	}
	ddl := schema.DDL(fmt.Sprintf("`%s`", dbName), table)
	if _, err = d.Exec(ddl); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

func (d *DB) Count(dbName, table string) (int, error) {
	rows, err := d.Query(fmt.Sprintf("SELECT count(0) FROM `%s`.`%s`", dbName, table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	total := 0
	if rows.Next() {
		if err = rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}

// LoadMaster batch-inserts the master TSV, resuming after however many
// rows are already in the table.
func (d *DB) LoadMaster(masterPath, dbName, table string) (int, error) {
	if err := d.InitTable(dbName, table); err != nil {
		return 0, err
	}
	offset, err := d.Count(dbName, table)
	if err != nil {
		return 0, err
	}
	if offset > 0 {
		log.Infof("%s.%s already holds %d rows, resuming after them", dbName, table, offset)
	}

	f, err := os.Open(masterPath)
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

	prefix := insertPrefix(dbName, table)
	buf := bytes.Buffer{}
	buf.WriteString(prefix)
	batch := 0
	inserted := 0
	skipped := 0
	flush := func() error {
		if batch == 0 {
			return nil
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteString(";")
		if _, err := d.Exec(buf.String()); err != nil {
			log.Errorf("%s.%s batch of %d failed", dbName, table, batch)
			return err
		}
		inserted += batch
		batch = 0
		buf.Reset()
		buf.WriteString(prefix)
		return nil
	}
	for {
		rec, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, err
		}
		if skipped < offset {
			skipped++
			continue
		}
		m, err := model.MasterFromRecord(rec)
		if err != nil {
			return inserted, err
		}
		buf.WriteString("(")
		buf.WriteString(values(m))
		buf.WriteString("),")
		batch++
		if batch >= consts.InsertBatch {
			if err := flush(); err != nil {
				return inserted, err
			}
			if inserted%(10*consts.InsertBatch) == 0 {
				log.Infof("%s.%s inserted %d", dbName, table, offset+inserted)
			}
		}
	}
	if err := flush(); err != nil {
		return inserted, err
	}
	total, err := d.Count(dbName, table)
	if err != nil {
		return inserted, err
	}
	log.Infof("%s.%s total %d rows", dbName, table, total)
	return inserted, nil
}

func insertPrefix(dbName, table string) string {
	cols := schema.InsertColumns()
	for i, c := range cols {
		cols[i] = "`" + c + "`"
	}
	return fmt.Sprintf("INSERT INTO `%s`.`%s` (%s) VALUES ", dbName, table, strings.Join(cols, ","))
}

// values renders one row's VALUES tuple in InsertColumns order. Empty
// optional fields become NULL.
func values(m *model.Master) string {
	parts := []string{
		quote(m.EC),
		quote(m.EnzymeName),
		nullable(m.AltNames),
		quote(m.Reaction),
		quote(m.UniProtID),
		quote(m.Sequence),
		fmt.Sprintf("%d", m.Length),
		quote(m.Organism),
		quote(m.ProteinName),
		nullable(m.GeneName),
		fmt.Sprintf("%d", m.EmbIdx),
	}
	return strings.Join(parts, ",")
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

// quote escapes a value for a MySQL string literal. Enzyme names do
// contain apostrophes (5'-nucleotidase).
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `''`)
	return "'" + s + "'"
}
