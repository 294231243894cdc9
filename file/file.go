package file

import (
	"io"
	"os"
	"path/filepath"
)

type File struct {
	file *os.File
}

func New(path string, flag int) (*File, error) {
	f, err := os.OpenFile(path, flag, os.FileMode(0766))
	return &File{
		file: f,
	}, err
}

// Create opens path for writing, truncating it and creating parent
// directories as needed.
func Create(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.FileMode(0766)); err != nil {
			return nil, err
		}
	}
	return New(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

func (f *File) Name() string {
	return f.file.Name()
}

func (f *File) Path() string {
	return f.file.Name()
}

func (f *File) WriteAt(offset int64, bytes []byte) error {
	_, err := f.file.WriteAt(bytes, offset)
	return err
}

func (f *File) Write(bytes []byte) (int, error) {
	return f.file.Write(bytes)
}

func (f *File) ReadAt(offset int64, bytes []byte) error {
	_, err := f.file.ReadAt(bytes, offset)
	return err
}

func (f *File) Read(bytes []byte) (int, error) {
	return f.file.Read(bytes)
}

func (f *File) ReadAll() ([]byte, error) {
	return io.ReadAll(f.file)
}

func (f *File) Truncate(size int64) error {
	return f.file.Truncate(size)
}

func (f *File) Sync() error {
	return f.file.Sync()
}

func (f *File) Close() error {
	return f.file.Close()
}

func (f *File) Delete() error {
	_ = f.file.Close()
	return os.Remove(f.file.Name())
}

func (f *File) Size() int64 {
	info, err := f.file.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}
