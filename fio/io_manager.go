package fio

import "io"

// IOManager can be custom in options
type IOManager interface {
	io.ReadSeeker
	Write([]byte) (int, error)
	Size() (int64, error)
	Sync() error
	Close() error
}
