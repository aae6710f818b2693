package fio

import (
	"github.com/gofrs/flock"
)

type FileLocker interface {
	TryLock() (bool, error)
	TryRLock() (bool, error)
	Unlock() error
}

const flockSuffix = ".lock"

var _ FileLocker = (*flock.Flock)(nil)

// NewFlock returns the lock guarding the data file at path.
// readers hold it shared, the writer holds it exclusively
func NewFlock(path string) *flock.Flock {
	return flock.New(path + flockSuffix)
}
