package codec

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cqkv/extsearch/model"
	"github.com/stretchr/testify/assert"
)

func newCodecImpl() *CodecImpl {
	return NewCodecImpl()
}

func TestCodecImpl_MarshalRecord(t *testing.T) {
	cl := newCodecImpl()
	record := &model.Record{
		Key:    2,
		Values: [model.PayloadFields]float64{1, 2, 3},
	}
	data, err := cl.MarshalRecord(record)
	assert.Nil(t, err)
	assert.Equal(t, model.RecordSize, len(data))
	assert.Equal(t, []byte{0, 0, 0, 2}, data[:4])
	// 1.0 == 0x3FF0000000000000
	assert.Equal(t, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, data[4:12])
}

func TestCodecImpl_MarshalRecordLittleEndian(t *testing.T) {
	cl := NewCodecImplWithOrder(binary.LittleEndian)
	data, err := cl.MarshalRecord(&model.Record{Key: 2})
	assert.Nil(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0}, data[:4])
	assert.Equal(t, binary.LittleEndian, cl.Order())
}

func TestCodecImpl_MarshalRecordTo(t *testing.T) {
	cl := newCodecImpl()
	err := cl.MarshalRecordTo(make([]byte, model.RecordSize-1), &model.Record{})
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestCodecImpl_UnmarshalKey(t *testing.T) {
	cl := newCodecImpl()
	data := make([]byte, model.RecordSize)
	copy(data, []byte{0xff, 0xff, 0xff, 0xfe})

	key, err := cl.UnmarshalKey(data)
	assert.Nil(t, err)
	assert.Equal(t, int32(-2), key)

	_, err = cl.UnmarshalKey(data[:3])
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestCodecImpl_UnmarshalRecord(t *testing.T) {
	cl := newCodecImpl()
	record := &model.Record{}

	err := cl.UnmarshalRecord(make([]byte, model.RecordSize-1), record)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
	assert.Equal(t, model.Record{}, *record)

	// extra trailing bytes are ignored
	data := make([]byte, model.RecordSize+4)
	data[3] = 7
	err = cl.UnmarshalRecord(data, record)
	assert.Nil(t, err)
	assert.Equal(t, int32(7), record.Key)
}

func TestCodecImpl_RoundTrip(t *testing.T) {
	records := []model.Record{
		{},
		{Key: 6, Values: [model.PayloadFields]float64{0.5, -1.25, 1e300}},
		{Key: math.MinInt32, Values: [model.PayloadFields]float64{math.Inf(1), math.Inf(-1), math.SmallestNonzeroFloat64}},
		{Key: math.MaxInt32, Values: [model.PayloadFields]float64{math.MaxFloat64, -0.0, 42}},
	}

	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		cl := NewCodecImplWithOrder(order)
		for _, want := range records {
			data, err := cl.MarshalRecord(&want)
			assert.Nil(t, err)

			var got model.Record
			assert.Nil(t, cl.UnmarshalRecord(data, &got))
			assert.Equal(t, want, got)
		}
	}
}

func TestCodecImpl_RoundTripNaN(t *testing.T) {
	cl := newCodecImpl()
	nan := math.Float64frombits(0x7ff8000000000001)
	data, err := cl.MarshalRecord(&model.Record{Key: 1, Values: [model.PayloadFields]float64{nan}})
	assert.Nil(t, err)

	var got model.Record
	assert.Nil(t, cl.UnmarshalRecord(data, &got))
	assert.Equal(t, uint64(0x7ff8000000000001), math.Float64bits(got.Values[0]))
}
