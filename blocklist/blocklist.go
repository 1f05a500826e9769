// Package blocklist provides the banned-host set loaded once at startup.
package blocklist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/jpcorpus"
)

// falsePositiveRate sizes the Bloom prefilter. A false positive only costs
// one extra map lookup, so the rate can be generous.
const falsePositiveRate = 0.01

// Ensure Set implements jpcorpus.DomainBlocker at compile time.
var _ jpcorpus.DomainBlocker = (*Set)(nil)

// Set is an immutable set of banned host names. It is built once at startup
// and shared read-only by all workers; lookups are safe for unsynchronized
// concurrent use. A Bloom filter screens out the overwhelmingly common
// not-blocked case before the exact-match lookup.
type Set struct {
	hosts  map[string]struct{}
	filter *bloom.BloomFilter
}

// NewSet builds a Set from a list of host names. Entries are lowercased;
// lookups are exact-match against the stored entries.
func NewSet(hosts []string) *Set {
	n := uint(len(hosts))
	if n == 0 {
		n = 1
	}
	s := &Set{
		hosts:  make(map[string]struct{}, len(hosts)),
		filter: bloom.NewWithEstimates(n, falsePositiveRate),
	}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		s.hosts[h] = struct{}{}
		s.filter.AddString(h)
	}
	return s
}

// Load builds a Set from a directory tree. Every regular file found in an
// immediate subdirectory of dir is parsed as a plain-text host list: one
// host per line, blank lines and lines starting with '#' ignored. All lists
// are unioned into one set.
func Load(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, jpcorpus.Errorf(jpcorpus.ENOTFOUND, "blocklist directory %q: %v", dir, err)
	}

	var hosts []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		files, err := os.ReadDir(sub)
		if err != nil {
			return nil, jpcorpus.Errorf(jpcorpus.EINTERNAL, "blocklist directory %q: %v", sub, err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			listed, err := parseFile(filepath.Join(sub, file.Name()))
			if err != nil {
				return nil, err
			}
			hosts = append(hosts, listed...)
		}
	}

	return NewSet(hosts), nil
}

// Blocked reports whether host is on the list. The host is compared as
// given; entries are stored lowercase, so a mixed-case host that was
// lowercased at load will not match (fail open).
func (s *Set) Blocked(host string) bool {
	if host == "" {
		return false
	}
	if !s.filter.TestString(host) {
		return false
	}
	_, ok := s.hosts[host]
	return ok
}

// Len returns the number of distinct hosts in the set.
func (s *Set) Len() int {
	return len(s.hosts)
}

func parseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, jpcorpus.Errorf(jpcorpus.EINTERNAL, "blocklist file %q: %v", path, err)
	}
	defer f.Close()

	var hosts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, jpcorpus.Errorf(jpcorpus.EINTERNAL, "blocklist file %q: %v", path, err)
	}
	return hosts, nil
}
