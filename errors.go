package extsearch

import (
	"fmt"

	"github.com/cqkv/extsearch/codec"
)

var (
	ErrShortRead = addPrefix("short read, data file may be truncated")
	ErrSeek      = addPrefix("seek data file failed")
	ErrRead      = addPrefix("read data file failed")
	ErrSize      = addPrefix("get data file size failed")

	ErrMalformedRecord = codec.ErrMalformedRecord

	ErrFileLocked        = addPrefix("data file is locked")
	ErrDataFileCorrupted = addPrefix("data file may be corrupted")
	ErrUnsortedKey       = addPrefix("record key is not greater than the previous key")
	ErrWriterClosed      = addPrefix("writer is closed")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("extsearch err: %s", errStr)
}
