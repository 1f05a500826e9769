package mock

import "github.com/fwojciec/jpcorpus"

var _ jpcorpus.DomainBlocker = (*DomainBlocker)(nil)

// DomainBlocker is a mock implementation of jpcorpus.DomainBlocker.
type DomainBlocker struct {
	BlockedFn func(host string) bool
}

func (b *DomainBlocker) Blocked(host string) bool {
	return b.BlockedFn(host)
}
