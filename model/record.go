package model

const (
	KeySize   = 4 // int32 key
	ValueSize = 8 // float64 payload field

	PayloadFields = 3

	// RecordSize is the serialized width of every record in a data file
	RecordSize = KeySize + PayloadFields*ValueSize
)

// Record is one fixed-width entry of a sorted data file.
type Record struct {
	Key    int32
	Values [PayloadFields]float64
}
