package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"enzymepipe/consts"
)

// TSVWriter writes header-prefixed tab-separated records. Empty string
// stands for NULL; fields must not contain tabs or newlines (neither
// ENZYME nor UniProt TSV values do).
type TSVWriter struct {
	bw     *bufio.Writer
	header []string
}

func NewTSVWriter(w io.Writer, header []string) (*TSVWriter, error) {
	tw := &TSVWriter{
		bw:     bufio.NewWriterSize(w, consts.FileBufferSize),
		header: header,
	}
	if err := tw.write(header); err != nil {
		return nil, err
	}
	return tw, nil
}

// NewTSVAppender wraps an existing file without writing a header.
func NewTSVAppender(w io.Writer, header []string) *TSVWriter {
	return &TSVWriter{
		bw:     bufio.NewWriterSize(w, consts.FileBufferSize),
		header: header,
	}
}

func (tw *TSVWriter) Write(rec []string) error {
	if len(rec) != len(tw.header) {
		return fmt.Errorf("record has %d fields, header has %d", len(rec), len(tw.header))
	}
	for _, v := range rec {
		if strings.IndexByte(v, consts.TAB) >= 0 || strings.IndexByte(v, consts.LF) >= 0 {
			return fmt.Errorf("field %q contains a separator byte", v)
		}
	}
	return tw.write(rec)
}

func (tw *TSVWriter) write(rec []string) error {
	for i, v := range rec {
		if i > 0 {
			if err := tw.bw.WriteByte(consts.TAB); err != nil {
				return err
			}
		}
		if _, err := tw.bw.WriteString(v); err != nil {
			return err
		}
	}
	return tw.bw.WriteByte(consts.LF)
}

func (tw *TSVWriter) Flush() error {
	return tw.bw.Flush()
}

// TSVReader reads header-prefixed tab-separated records.
type TSVReader struct {
	br     *bufio.Reader
	header []string
	line   int
}

func NewTSVReader(r io.Reader) (*TSVReader, error) {
	tr := &TSVReader{
		br: bufio.NewReaderSize(r, consts.FileBufferSize),
	}
	header, err := tr.Next()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, err
	}
	tr.header = header
	return tr, nil
}

func (tr *TSVReader) Header() []string {
	return tr.header
}

// Next returns the fields of the next row, or io.EOF. Rows with a field
// count different from the header are an error.
func (tr *TSVReader) Next() ([]string, error) {
	line, err := tr.br.ReadString(consts.LF)
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, io.EOF
		}
		if err != io.EOF {
			return nil, err
		}
	}
	tr.line++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return tr.Next()
	}
	rec := strings.Split(line, "\t")
	if tr.header != nil && len(rec) != len(tr.header) {
		return nil, fmt.Errorf("line %d: %d fields, want %d", tr.line, len(rec), len(tr.header))
	}
	return rec, nil
}

// ExpectHeader verifies that the file's header matches want.
func (tr *TSVReader) ExpectHeader(want []string) error {
	if len(tr.header) != len(want) {
		return fmt.Errorf("header %v, want %v", tr.header, want)
	}
	for i := range want {
		if tr.header[i] != want[i] {
			return fmt.Errorf("header %v, want %v", tr.header, want)
		}
	}
	return nil
}
