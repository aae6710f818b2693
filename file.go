package extsearch

import (
	"context"
	"sync"

	"github.com/cqkv/extsearch/cache"
	"github.com/cqkv/extsearch/fio"
	"github.com/cqkv/extsearch/model"

	"github.com/gofrs/flock"
)

var _ Handle = (*File)(nil)

// File is a sorted data file opened for searching.
// it holds a shared lock on the file so no Writer can modify it meanwhile
type File struct {
	mu sync.Mutex // guards the read position of dataFile

	path     string
	dataFile *model.DataFile
	lock     *flock.Flock
	searcher *Searcher

	cache       cache.Cache
	cacheLevels int
}

// Open opens the data file at path read only
func Open(path string, opts ...Option) (*File, error) {
	lock := fio.NewFlock(path)
	locked, err := lock.TryRLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrFileLocked
	}

	ioManager, err := fio.OpenFileIO(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	searcher := New(opts...)
	f := &File{
		path:     path,
		dataFile: model.OpenDataFile(ioManager),
		lock:     lock,
		searcher: searcher,
	}
	if levels := searcher.options.cacheLevels; levels > 0 {
		f.cache = cache.NewBTree(searcher.options.cacheDegree)
		f.cacheLevels = levels
	}
	return f, nil
}

// Get search the file for key, see Searcher.Search
func (f *File) Get(ctx context.Context, key int32) (model.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searcher.search(ctx, f.dataFile, key, f.cache, f.cacheLevels)
}

// Len return the number of records in the file
func (f *File) Len() (int64, error) {
	return f.dataFile.RecordCount(f.searcher.codec.RecordSize())
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Searcher() *Searcher {
	return f.searcher
}

func (f *File) Read(buf []byte) (int, error) {
	return f.dataFile.Read(buf)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.dataFile.Seek(offset, whence)
}

func (f *File) Size() (int64, error) {
	return f.dataFile.Size()
}

// Close release the file and its lock, cached probes are dropped
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cache != nil {
		_ = f.cache.Close()
	}
	if err := f.dataFile.Close(); err != nil {
		_ = f.lock.Unlock()
		return err
	}
	return f.lock.Unlock()
}
