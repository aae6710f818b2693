package extsearch

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/cqkv/extsearch/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := newDataFilePath(t)

	_, err := Open(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	writeKeys(t, path, 2, 4, 6, 8, 10)
	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	count, err := f.Len()
	assert.Nil(t, err)
	assert.Equal(t, int64(5), count)
	assert.Nil(t, f.Close())

	// the shared lock was released
	w, err := Create(path)
	require.NoError(t, err)
	assert.Nil(t, w.Close())
}

func TestOpen_SharedReaders(t *testing.T) {
	path := newDataFilePath(t)
	writeKeys(t, path, 1, 2, 3)

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	_, found, err := a.Get(context.Background(), 3)
	assert.Nil(t, err)
	assert.True(t, found)
	_, found, err = b.Get(context.Background(), 1)
	assert.Nil(t, err)
	assert.True(t, found)
}

func TestFile_Get(t *testing.T) {
	path := newDataFilePath(t)
	keys := evenKeys(500)
	writeKeys(t, path, keys...)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()
	for _, key := range keys {
		record, found, err := f.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, newRecord(key), record)

		_, found, err = f.Get(ctx, key+1)
		require.NoError(t, err)
		assert.False(t, found)
	}

	stats := f.Searcher().Stats()
	assert.Equal(t, uint64(1000), stats.Searches)
	assert.Equal(t, uint64(500), stats.Found)
	assert.Equal(t, uint64(0), stats.CacheHits)
}

func TestFile_ProbeCache(t *testing.T) {
	path := newDataFilePath(t)
	keys := evenKeys(1000)
	writeKeys(t, path, keys...)

	plain, err := Open(path)
	require.NoError(t, err)
	defer plain.Close()

	cached, err := Open(path, WithProbeCache(4, 8))
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()
	for _, key := range []int32{2, 3, 500, 999, 1000, 1001, 1998, 2000, 2001} {
		for round := 0; round < 2; round++ {
			want, wantFound, err := plain.Get(ctx, key)
			require.NoError(t, err)
			got, gotFound, err := cached.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, wantFound, gotFound, "key=%d", key)
			assert.Equal(t, want, got, "key=%d", key)
		}
	}

	plainStats, cachedStats := plain.Searcher().Stats(), cached.Searcher().Stats()
	assert.Equal(t, plainStats.Probes, cachedStats.Probes)
	assert.Greater(t, cachedStats.CacheHits, uint64(0))
	assert.Less(t, cachedStats.Reads, plainStats.Reads)
	assert.Equal(t, cachedStats.Probes, cachedStats.Reads+cachedStats.CacheHits)

	// at most 1 + 2 + 4 + 8 indexes live in the first 4 levels
	assert.LessOrEqual(t, cached.cache.Len(), 15)
}

func TestFile_Handle(t *testing.T) {
	path := newDataFilePath(t)
	writeKeys(t, path, 2, 4, 6)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	// a File is itself a Handle for any Searcher
	record, found, err := New().Search(context.Background(), f, 4)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int32(4), record.Key)

	pos, err := f.Seek(0, io.SeekCurrent)
	assert.Nil(t, err)
	assert.Equal(t, int64(2*model.RecordSize), pos)
}

func TestFile_ConcurrentGet(t *testing.T) {
	path := newDataFilePath(t)
	keys := evenKeys(256)
	writeKeys(t, path, keys...)

	f, err := Open(path, WithProbeCache(3, 0))
	require.NoError(t, err)
	defer f.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := g; i < len(keys); i += 8 {
				record, found, err := f.Get(context.Background(), keys[i])
				assert.Nil(t, err)
				assert.True(t, found)
				assert.Equal(t, keys[i], record.Key)
			}
		}(g)
	}
	wg.Wait()
}
