package cache

import (
	"sync"

	"github.com/cqkv/extsearch/model"

	"github.com/google/btree"
)

var _ Cache = (*BTree)(nil)

const defaultDegree = 32

// BTree implement the probe cache
type BTree struct {
	tree *btree.BTree

	// btree.BTree is not safe for concurrent writes
	lock *sync.RWMutex
}

func NewBTree(degree int) *BTree {
	if degree <= 0 {
		degree = defaultDegree
	}
	return &BTree{
		tree: btree.New(degree),
		lock: &sync.RWMutex{},
	}
}

// Put return false if the index was already cached
func (bt *BTree) Put(index int64, record model.Record) bool {
	item := &Item{
		index:  index,
		record: record,
	}
	bt.lock.Lock()
	defer bt.lock.Unlock()
	return bt.tree.ReplaceOrInsert(item) == nil
}

func (bt *BTree) Get(index int64) (model.Record, bool) {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	btItem := bt.tree.Get(&Item{index: index})
	if btItem == nil {
		return model.Record{}, false
	}
	return btItem.(*Item).record, true
}

func (bt *BTree) Len() int {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return bt.tree.Len()
}

// Ascend call fn for every cached record in index order until fn return false
func (bt *BTree) Ascend(fn func(index int64, record model.Record) bool) {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	bt.tree.Ascend(func(item btree.Item) bool {
		it := item.(*Item)
		return fn(it.index, it.record)
	})
}

func (bt *BTree) Close() error {
	bt.lock.Lock()
	defer bt.lock.Unlock()
	bt.tree.Clear(false)
	return nil
}
