package model

import "github.com/cqkv/extsearch/fio"

const (
	DataFileSuffix = ".rec"
)

// DataFile is a flat, sorted array of fixed-width records
type DataFile struct {
	WriteOffset int64 // only the writer uses this field
	WriteTimes  int64
	IoManager   fio.IOManager
}

func OpenDataFile(ioManager fio.IOManager) *DataFile {
	return &DataFile{
		IoManager: ioManager,
	}
}

func (df *DataFile) Sync() error {
	return df.IoManager.Sync()
}

// Write binary data into file
func (df *DataFile) Write(data []byte) error {
	size, err := df.IoManager.Write(data)
	if err != nil {
		return err
	}
	df.WriteOffset += int64(size)
	df.WriteTimes++
	return nil
}

func (df *DataFile) Read(buf []byte) (int, error) {
	return df.IoManager.Read(buf)
}

func (df *DataFile) Seek(offset int64, whence int) (int64, error) {
	return df.IoManager.Seek(offset, whence)
}

func (df *DataFile) Size() (int64, error) {
	return df.IoManager.Size()
}

// RecordCount return the number of whole records in the file,
// a trailing partial record is not counted
func (df *DataFile) RecordCount(recordSize int) (int64, error) {
	size, err := df.IoManager.Size()
	if err != nil {
		return 0, err
	}
	return size / int64(recordSize), nil
}

func (df *DataFile) Close() error {
	return df.IoManager.Close()
}
