package cache

import (
	"github.com/cqkv/extsearch/model"

	"github.com/google/btree"
)

// Cache holds records already probed, keyed by record index.
// you can use some other data structure once you implement this interface
type Cache interface {
	Put(index int64, record model.Record) bool
	Get(index int64) (model.Record, bool)
	Len() int
	Close() error
}

// Item implement the btree.Item interface
type Item struct {
	index  int64
	record model.Record
}

func (i *Item) Less(than btree.Item) bool {
	return i.index < than.(*Item).index
}
