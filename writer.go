package extsearch

import (
	"fmt"
	"io"

	"github.com/cqkv/extsearch/codec"
	"github.com/cqkv/extsearch/fio"
	"github.com/cqkv/extsearch/model"

	"github.com/gofrs/flock"
)

// Writer appends records with strictly ascending keys to a data file.
// it holds the exclusive lock of the file until Close
type Writer struct {
	dataFile *model.DataFile
	lock     *flock.Flock
	codec    codec.Codec

	count   int64
	lastKey int32
	closed  bool
}

// Create opens the data file at path for appending, creating it if needed.
// records already in the file are kept and new keys must sort after them
func Create(path string, opts ...Option) (*Writer, error) {
	o := applyOptions(opts)

	lock := fio.NewFlock(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrFileLocked
	}

	ioManager, err := fio.NewFileIO(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	w := &Writer{
		dataFile: model.OpenDataFile(ioManager),
		lock:     lock,
		codec:    o.codec,
	}
	if err = w.loadTail(); err != nil {
		_ = w.dataFile.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return w, nil
}

// loadTail restore the record count and the last key of an existing file
func (w *Writer) loadTail() error {
	size, err := w.dataFile.Size()
	if err != nil {
		return err
	}

	recordSize := int64(w.codec.RecordSize())
	if size%recordSize != 0 {
		return ErrDataFileCorrupted
	}
	w.dataFile.WriteOffset = size
	w.count = size / recordSize
	if w.count == 0 {
		return nil
	}

	buf := make([]byte, recordSize)
	if _, err = w.dataFile.Seek(size-recordSize, io.SeekStart); err != nil {
		return err
	}
	if _, err = io.ReadFull(w.dataFile, buf); err != nil {
		return err
	}
	w.lastKey, err = w.codec.UnmarshalKey(buf)
	return err
}

func (w *Writer) Append(record *model.Record) error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.count > 0 && record.Key <= w.lastKey {
		return fmt.Errorf("%w: %d after %d", ErrUnsortedKey, record.Key, w.lastKey)
	}

	data, err := w.codec.MarshalRecord(record)
	if err != nil {
		return err
	}
	if err = w.dataFile.Write(data); err != nil {
		return err
	}

	w.lastKey = record.Key
	w.count++
	return nil
}

// Count return the number of records in the file
func (w *Writer) Count() int64 {
	return w.count
}

func (w *Writer) Sync() error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.dataFile.Sync()
}

// Close sync and close the file, then release the lock
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.dataFile.Sync()
	if cerr := w.dataFile.Close(); err == nil {
		err = cerr
	}
	if uerr := w.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
