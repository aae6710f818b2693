package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cqkv/extsearch/model"
)

var _ Codec = (*CodecImpl)(nil)

type CodecImpl struct {
	order binary.ByteOrder
}

// NewCodecImpl return a big endian codec
func NewCodecImpl() *CodecImpl {
	return NewCodecImplWithOrder(binary.BigEndian)
}

func NewCodecImplWithOrder(order binary.ByteOrder) *CodecImpl {
	if order == nil {
		order = binary.BigEndian
	}
	return &CodecImpl{order: order}
}

/*
default codec:
	- record: key(4) + value(8) * 3 = 28 bytes, no header and no padding
	key | value0 | value1 | value2
	floats are stored as their IEEE 754 bits
*/

func (cl *CodecImpl) RecordSize() int {
	return model.RecordSize
}

func (cl *CodecImpl) Order() binary.ByteOrder {
	return cl.order
}

// MarshalRecord return record data
func (cl *CodecImpl) MarshalRecord(record *model.Record) ([]byte, error) {
	data := make([]byte, model.RecordSize)
	if err := cl.MarshalRecordTo(data, record); err != nil {
		return nil, err
	}
	return data, nil
}

// MarshalRecordTo write the record into dst, dst must hold RecordSize bytes
func (cl *CodecImpl) MarshalRecordTo(dst []byte, record *model.Record) error {
	if len(dst) < model.RecordSize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedRecord, model.RecordSize, len(dst))
	}

	cl.order.PutUint32(dst[:model.KeySize], uint32(record.Key))
	idx := model.KeySize
	for _, v := range record.Values {
		cl.order.PutUint64(dst[idx:idx+model.ValueSize], math.Float64bits(v))
		idx += model.ValueSize
	}
	return nil
}

func (cl *CodecImpl) UnmarshalRecord(data []byte, record *model.Record) error {
	key, err := cl.UnmarshalKey(data)
	if err != nil {
		return err
	}

	record.Key = key
	idx := model.KeySize
	for i := range record.Values {
		record.Values[i] = math.Float64frombits(cl.order.Uint64(data[idx : idx+model.ValueSize]))
		idx += model.ValueSize
	}
	return nil
}

func (cl *CodecImpl) UnmarshalKey(data []byte) (int32, error) {
	if len(data) < model.RecordSize {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedRecord, model.RecordSize, len(data))
	}
	return int32(cl.order.Uint32(data[:model.KeySize])), nil
}
