package extsearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sync/atomic"

	"github.com/cqkv/extsearch/cache"
	"github.com/cqkv/extsearch/codec"
	"github.com/cqkv/extsearch/model"
)

// Handle is an open data file positioned by Seek.
// if it also has Size() (int64, error) or Stat() (os.FileInfo, error)
// the length of the file is taken from there instead of seeking to the end
type Handle interface {
	io.ReadSeeker
}

type sizer interface {
	Size() (int64, error)
}

type stater interface {
	Stat() (os.FileInfo, error)
}

// Searcher looks up records by key in sorted data files.
// a Searcher may be shared, every Search call owns its window and buffer
type Searcher struct {
	verbosity int32
	logger    *slog.Logger
	codec     codec.Codec
	stats     searchStats

	options options
}

func New(opts ...Option) *Searcher {
	o := applyOptions(opts)
	return &Searcher{
		verbosity: int32(o.verbosity),
		logger:    o.logger,
		codec:     o.codec,
		options:   o,
	}
}

// SetVerbosity set trace level, 0 is no trace output
func (s *Searcher) SetVerbosity(level int) {
	atomic.StoreInt32(&s.verbosity, int32(level))
}

func (s *Searcher) Verbosity() int {
	return int(atomic.LoadInt32(&s.verbosity))
}

func (s *Searcher) Stats() Stats {
	return s.stats.snapshot()
}

// Search binary searches h for the record with key.
// found is false with a nil error when no record has the key or h is nil,
// any I/O failure aborts the search and is returned as error.
// the read position of h is moved, h is never closed
func (s *Searcher) Search(ctx context.Context, h Handle, key int32) (record model.Record, found bool, err error) {
	return s.search(ctx, h, key, nil, 0)
}

func (s *Searcher) search(ctx context.Context, h Handle, key int32, pc cache.Cache, cacheLevels int) (record model.Record, found bool, err error) {
	s.stats.recordSearch()
	defer func() {
		switch {
		case err != nil:
			s.stats.recordFailure()
		case found:
			s.stats.recordFound()
		default:
			s.stats.recordNotFound()
		}
	}()

	if isNilHandle(h) {
		return model.Record{}, false, nil
	}

	verbosity := s.Verbosity()
	recordSize := int64(s.codec.RecordSize())

	size, err := handleSize(h)
	if err != nil {
		return model.Record{}, false, fmt.Errorf("%w: %w", ErrSize, err)
	}

	// the search window is low..high if we view the file as an array of records
	var low, high int64 = 0, size/recordSize - 1
	if verbosity >= 1 {
		s.logger.Debug("data file opened", "records", high+1, "size", size)
		if tail := size % recordSize; tail != 0 {
			s.logger.Debug("ignore trailing partial record", "bytes", tail)
		}
	}

	buf := make([]byte, recordSize)
	for depth := 0; low <= high; depth++ {
		if err = ctx.Err(); err != nil {
			return model.Record{}, false, err
		}

		mid := (low + high) / 2
		if verbosity >= 1 {
			s.logger.Debug("probe", "low", low, "mid", mid, "high", high)
		}
		s.stats.recordProbe()

		cacheable := pc != nil && depth < cacheLevels
		var (
			probeKey int32
			loaded   bool
		)
		if cacheable {
			if record, loaded = pc.Get(mid); loaded {
				probeKey = record.Key
				s.stats.recordCacheHit()
			}
		}

		if !loaded {
			if err = s.readAt(h, mid*recordSize, buf); err != nil {
				return model.Record{}, false, err
			}
			if cacheable {
				if err = s.codec.UnmarshalRecord(buf, &record); err != nil {
					return model.Record{}, false, err
				}
				pc.Put(mid, record)
				probeKey, loaded = record.Key, true
			} else if probeKey, err = s.codec.UnmarshalKey(buf); err != nil {
				return model.Record{}, false, err
			}
		}

		if verbosity >= 2 {
			s.logger.Debug("probe key", "mid", mid, "key", probeKey, "target", key)
		}

		switch {
		case probeKey == key:
			if !loaded {
				if err = s.codec.UnmarshalRecord(buf, &record); err != nil {
					return model.Record{}, false, err
				}
			}
			return record, true, nil
		case probeKey < key:
			low = mid + 1
		default:
			high = mid - 1
		}
	}

	return model.Record{}, false, nil
}

// readAt fills buf with the bytes at pos, a short read is fatal
func (s *Searcher) readAt(h Handle, pos int64, buf []byte) error {
	if _, err := h.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: offset %d: %w", ErrSeek, pos, err)
	}

	s.stats.recordRead()
	n, err := io.ReadFull(h, buf)
	switch err {
	case nil:
		return nil
	case io.EOF, io.ErrUnexpectedEOF:
		return fmt.Errorf("%w: offset %d: got %d of %d bytes", ErrShortRead, pos, n, len(buf))
	default:
		return fmt.Errorf("%w: offset %d: %w", ErrRead, pos, err)
	}
}

func handleSize(h Handle) (int64, error) {
	switch v := h.(type) {
	case sizer:
		return v.Size()
	case stater:
		fi, err := v.Stat()
		if err != nil {
			return 0, err
		}
		return fi.Size(), nil
	}
	return h.Seek(0, io.SeekEnd)
}

// isNilHandle also catch typed nil pointers such as (*os.File)(nil)
func isNilHandle(h Handle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
