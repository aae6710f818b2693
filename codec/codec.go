package codec

import (
	"errors"

	"github.com/cqkv/extsearch/model"
)

// ErrMalformedRecord is returned when a buffer is shorter than one record
var ErrMalformedRecord = errors.New("malformed record")

type Codec interface {
	// RecordSize return the fixed serialized width of one record
	RecordSize() int

	// MarshalRecord return the record data, always RecordSize bytes
	MarshalRecord(*model.Record) ([]byte, error)

	UnmarshalRecord([]byte, *model.Record) error

	// UnmarshalKey decode only the key of a record
	UnmarshalKey([]byte) (int32, error)
}
