package fio

import "os"

// FileIO is the default implement for IOManager
type FileIO struct {
	fd *os.File
}

// NewFileIO opens file for appending, creating it if needed
func NewFileIO(file string) (*FileIO, error) {
	fd, err := os.OpenFile(file, os.O_APPEND|os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

// OpenFileIO opens an existing file read only
func OpenFileIO(file string) (*FileIO, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

func (fio *FileIO) Read(buf []byte) (int, error) {
	return fio.fd.Read(buf)
}
func (fio *FileIO) Seek(offset int64, whence int) (int64, error) {
	return fio.fd.Seek(offset, whence)
}
func (fio *FileIO) Write(data []byte) (int, error) {
	return fio.fd.Write(data)
}
func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
func (fio *FileIO) Sync() error {
	return fio.fd.Sync()
}
func (fio *FileIO) Close() error {
	return fio.fd.Close()
}
