package extsearch

import "sync/atomic"

// Stats is a snapshot of the counters of a Searcher
type Stats struct {
	Searches  uint64
	Found     uint64
	NotFound  uint64
	Failures  uint64
	Probes    uint64
	Reads     uint64
	CacheHits uint64
}

type searchStats struct {
	searches  uint64
	found     uint64
	notFound  uint64
	failures  uint64
	probes    uint64
	reads     uint64
	cacheHits uint64
}

func (ss *searchStats) recordSearch() {
	atomic.AddUint64(&ss.searches, 1)
}

func (ss *searchStats) recordFound() {
	atomic.AddUint64(&ss.found, 1)
}

func (ss *searchStats) recordNotFound() {
	atomic.AddUint64(&ss.notFound, 1)
}

func (ss *searchStats) recordFailure() {
	atomic.AddUint64(&ss.failures, 1)
}

func (ss *searchStats) recordProbe() {
	atomic.AddUint64(&ss.probes, 1)
}

func (ss *searchStats) recordRead() {
	atomic.AddUint64(&ss.reads, 1)
}

func (ss *searchStats) recordCacheHit() {
	atomic.AddUint64(&ss.cacheHits, 1)
}

func (ss *searchStats) snapshot() Stats {
	return Stats{
		Searches:  atomic.LoadUint64(&ss.searches),
		Found:     atomic.LoadUint64(&ss.found),
		NotFound:  atomic.LoadUint64(&ss.notFound),
		Failures:  atomic.LoadUint64(&ss.failures),
		Probes:    atomic.LoadUint64(&ss.probes),
		Reads:     atomic.LoadUint64(&ss.reads),
		CacheHits: atomic.LoadUint64(&ss.cacheHits),
	}
}

// HitRatio return found / searches
func (s Stats) HitRatio() float64 {
	if s.Searches == 0 {
		return 0
	}
	return float64(s.Found) / float64(s.Searches)
}
