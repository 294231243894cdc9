package filesort

import (
	"io"

	"enzymepipe/file"
	"enzymepipe/model"
)

// countingReader tracks how many bytes a source has yielded so sharding
// can cut runs by size.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// fileBuffer streams master rows out of one TSV source.
type fileBuffer struct {
	f  *file.File
	cr *countingReader
	tr *model.TSVReader
}

func newFileBuffer(f *file.File) (*fileBuffer, error) {
	cr := &countingReader{r: f}
	tr, err := model.NewTSVReader(cr)
	if err != nil {
		return nil, err
	}
	if err := tr.ExpectHeader(model.MasterHeader); err != nil {
		return nil, err
	}
	return &fileBuffer{
		f:  f,
		cr: cr,
		tr: tr,
	}, nil
}

func (fb *fileBuffer) NextRow() (*model.Master, error) {
	rec, err := fb.tr.Next()
	if err != nil {
		return nil, err
	}
	return model.MasterFromRecord(rec)
}

func (fb *fileBuffer) pos() int64 {
	return fb.cr.n
}

// memBuffer is one sorted, deduplicated in-memory run.
type memBuffer struct {
	rows model.Masters
	pos  int
}

func newMemBuffer(rows model.Masters) *memBuffer {
	return &memBuffer{rows: rows}
}

func (mb *memBuffer) NextRow() (*model.Master, error) {
	if mb.pos >= len(mb.rows) {
		return nil, io.EOF
	}
	row := mb.rows[mb.pos]
	mb.pos++
	return row, nil
}

func (mb *memBuffer) Reset() {
	mb.pos = 0
}
