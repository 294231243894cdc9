package embed

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"enzymepipe/file"
)

// Tensor container: 4-byte magic, uint32 version, uint64 rows,
// uint32 dim, then rows*dim little-endian float32 values. The pipeline
// only needs the header to check emb_idx referential integrity; the
// writer exists for tests and placeholder tensors.

var magic = [4]byte{'E', 'M', 'B', 'T'}

const Version = 1

var (
	ErrBadMagic   = errors.New("not a tensor file")
	ErrBadVersion = errors.New("unsupported tensor version")
)

type Header struct {
	Version uint32
	Rows    uint64
	Dim     uint32
}

// Check enforces that every emb_idx in [0, maxIdx] resolves to a tensor
// row.
func (h Header) Check(maxIdx int64) error {
	if maxIdx < 0 {
		return nil
	}
	if uint64(maxIdx) >= h.Rows {
		return fmt.Errorf("emb_idx %d out of range: tensor has %d rows", maxIdx, h.Rows)
	}
	return nil
}

func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	var got [4]byte
	if err := binary.Read(f, binary.LittleEndian, &got); err != nil {
		return Header{}, err
	}
	if got != magic {
		return Header{}, ErrBadMagic
	}
	h := Header{}
	if err := binary.Read(f, binary.LittleEndian, &h.Version); err != nil {
		return Header{}, err
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if err := binary.Read(f, binary.LittleEndian, &h.Rows); err != nil {
		return Header{}, err
	}
	if err := binary.Read(f, binary.LittleEndian, &h.Dim); err != nil {
		return Header{}, err
	}
	return h, nil
}

func Write(path string, vectors [][]float32) error {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("row %d has dim %d, want %d", i, len(v), dim)
		}
	}
	f, err := file.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if _, err := bw.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(vectors))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}
	scratch := make([]byte, 4)
	for _, v := range vectors {
		for _, x := range v {
			binary.LittleEndian.PutUint32(scratch, math.Float32bits(x))
			if _, err := bw.Write(scratch); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// Row reads one embedding vector, mostly for spot checks.
func Row(path string, idx int64) ([]float32, error) {
	h, err := ReadHeader(path)
	if err != nil {
		return nil, err
	}
	if err := h.Check(idx); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	headerSize := int64(4 + 4 + 8 + 4)
	offset := headerSize + idx*int64(h.Dim)*4
	buf := make([]byte, int(h.Dim)*4)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	vec := make([]float32, h.Dim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}
