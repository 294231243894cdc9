package enzyme

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"enzymepipe/consts"
	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
)

// accessionPattern picks six-character tokens off DR lines. Entry names
// like AK1H_ECOLI never match because underscore is a word character.
var accessionPattern = regexp.MustCompile(`\b([A-Z0-9]{6})\b`)

type builder struct {
	ec       string
	name     []string
	altNames []string
	reaction []string
	prosite  []string
	accs     []string
}

func (b *builder) flush(entries *[]*model.Entry) {
	if b.ec == "" {
		return
	}
	*entries = append(*entries, &model.Entry{
		EC:          b.ec,
		Name:        strings.Join(b.name, " "),
		AltNames:    strings.Join(b.altNames, " "),
		Reaction:    strings.Join(b.reaction, " "),
		PrositeRefs: strings.Join(b.prosite, "; "),
		Accessions:  b.accs,
	})
	*b = builder{}
}

// Parse reads an ENZYME flatfile (enzyme.dat). Each record is a block of
// two-letter coded lines terminated by "//"; DE/AN/CA continuation lines
// are joined with single spaces. A missing trailing "//" still flushes
// the last record.
func Parse(r io.Reader) ([]*model.Entry, error) {
	entries := make([]*model.Entry, 0)
	b := builder{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, consts.FileBufferSize), consts.FileBufferSize)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		code := line
		if len(code) > 2 {
			code = line[:2]
		}
		content := ""
		if len(line) > 5 {
			content = strings.TrimSpace(line[5:])
		}
		switch code {
		case "ID":
			// A new ID while a record is open flushes the previous one.
			b.flush(&entries)
			parts := strings.Fields(content)
			if len(parts) > 0 {
				b.ec = parts[0]
			}
		case "DE":
			b.name = append(b.name, content)
		case "AN":
			b.altNames = append(b.altNames, content)
		case "CA":
			b.reaction = append(b.reaction, content)
		case "PR":
			b.prosite = append(b.prosite, content)
		case "DR":
			for _, acc := range accessionPattern.FindAllString(content, -1) {
				// PSxxxxx tokens are PROSITE pattern ids, not accessions.
				if !strings.HasPrefix(acc, "PS") {
					b.accs = append(b.accs, acc)
				}
			}
		case "//":
			b.flush(&entries)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	b.flush(&entries)
	return entries, nil
}

func ParseFile(path string) ([]*model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// WriteRaw parses the flatfile at datPath and writes enzyme_raw.tsv.
func WriteRaw(datPath, outPath string) (int, error) {
	entries, err := ParseFile(datPath)
	if err != nil {
		return 0, err
	}
	out, err := file.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	tw, err := model.NewTSVWriter(out, model.RawHeader)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := tw.Write(e.Record()); err != nil {
			return 0, err
		}
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	log.Infof("parsed %d EC entries from %s", len(entries), datPath)
	return len(entries), nil
}
